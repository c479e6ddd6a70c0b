package services

import (
	"fmt"

	"github.com/localnerve/configdb/internal/models"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/types"
)

// VersionService manages the Versions collection (shortname-scoped version
// rows) and the label-global Release registry used by the version-first
// routes and duplication.
type VersionService struct {
	store *store.Store
}

// NewVersionService creates a VersionService.
func NewVersionService(st *store.Store) *VersionService {
	return &VersionService{store: st}
}

// ListForShortname returns the versions owned by slug, via the shortname index.
func (s *VersionService) ListForShortname(slug string) ([]models.Version, error) {
	versions, err := s.store.ListVersionsByShortname(slug)
	if err != nil {
		return nil, types.Internal("Failed to list versions", err)
	}
	return versions, nil
}

// ListForLabel returns every version row carrying label, via the label index.
func (s *VersionService) ListForLabel(label string) ([]models.Version, error) {
	versions, err := s.store.ListVersionsByLabel(label)
	if err != nil {
		return nil, types.Internal("Failed to list versions", err)
	}
	return versions, nil
}

// Get fetches a version by its composite scope key.
func (s *VersionService) Get(slug, label string) (*models.Version, error) {
	v, err := s.store.GetVersion(models.ScopeKey(slug, label))
	if err != nil {
		return nil, types.Internal("Failed to read version", err)
	}
	if v == nil {
		return nil, types.NotFound(fmt.Sprintf("Version '%s' not found for shortname '%s'", label, slug))
	}
	return v, nil
}

// Create stores a new version under slug. The owning shortname must already
// exist; the check runs before any write.
func (s *VersionService) Create(slug, label, description string, isActive bool, creator string) (*models.Version, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateLabel(label); err != nil {
		return nil, err
	}

	sn, err := s.store.GetShortname(slug)
	if err != nil {
		return nil, types.Internal("Failed to read shortname", err)
	}
	if sn == nil {
		return nil, types.NotFound(fmt.Sprintf("Shortname '%s' not found", slug))
	}

	scopeKey := models.ScopeKey(slug, label)
	existing, err := s.store.GetVersion(scopeKey)
	if err != nil {
		return nil, types.Internal("Failed to read version", err)
	}
	if existing != nil {
		return nil, types.Conflict(fmt.Sprintf("Version '%s' already exists for shortname '%s'", label, slug))
	}

	v := &models.Version{
		ScopeKey:    scopeKey,
		Shortname:   slug,
		Label:       label,
		Description: description,
		IsActive:    isActive,
		Creator:     creator,
	}
	if err := s.store.CreateVersion(v); err != nil {
		if store.IsDuplicate(err) {
			return nil, types.Conflict(fmt.Sprintf("Version '%s' already exists for shortname '%s'", label, slug))
		}
		return nil, types.Internal("Failed to create version", err)
	}
	return v, nil
}

// Update applies partial update semantics: only attributes explicitly supplied
// are modified.
func (s *VersionService) Update(slug, label string, description *string, isActive *bool) (*models.Version, error) {
	v, err := s.Get(slug, label)
	if err != nil {
		return nil, err
	}

	if description != nil {
		v.Description = *description
	}
	if isActive != nil {
		v.IsActive = *isActive
	}
	if err := s.store.SaveVersion(v); err != nil {
		return nil, types.Internal("Failed to update version", err)
	}
	return v, nil
}

// Delete removes a version after deleting every configuration scoped to it.
// Configurations are located through the scope key index and removed one at a
// time before the version record itself, so a partial failure never leaves a
// configuration under a deleted version.
func (s *VersionService) Delete(slug, label string) error {
	v, err := s.Get(slug, label)
	if err != nil {
		return err
	}

	configs, err := s.store.ListConfigurationsByScope(v.ScopeKey)
	if err != nil {
		return types.Internal("Failed to list configurations for version", err)
	}
	for i := range configs {
		if err := s.store.DeleteConfiguration(&configs[i]); err != nil {
			return types.Internal("Failed to delete configuration during cascade", err)
		}
	}

	if err := s.store.DeleteVersion(v); err != nil {
		return types.Internal("Failed to delete version", err)
	}
	return nil
}

// CreateRelease stores a new label-global release, rejecting duplicate labels.
func (s *VersionService) CreateRelease(label, description string, isActive bool, creator string) (*models.Release, error) {
	if err := validateLabel(label); err != nil {
		return nil, err
	}

	existing, err := s.store.GetRelease(label)
	if err != nil {
		return nil, types.Internal("Failed to read release", err)
	}
	if existing != nil {
		return nil, types.Conflict(fmt.Sprintf("Version '%s' already exists", label))
	}

	rel := &models.Release{
		Label:       label,
		Description: description,
		IsActive:    isActive,
		Creator:     creator,
	}
	if err := s.store.CreateRelease(rel); err != nil {
		if store.IsDuplicate(err) {
			return nil, types.Conflict(fmt.Sprintf("Version '%s' already exists", label))
		}
		return nil, types.Internal("Failed to create release", err)
	}
	return rel, nil
}

// ListReleases returns all registry releases, unordered.
func (s *VersionService) ListReleases() ([]models.Release, error) {
	releases, err := s.store.ListReleases()
	if err != nil {
		return nil, types.Internal("Failed to list releases", err)
	}
	return releases, nil
}

// Associate creates the shortname association under a version label, creating
// the shortname itself when it does not exist yet. Fails with Conflict when
// the association is already present.
func (s *VersionService) Associate(slug, label, description string, isActive bool, creator string) (*models.Version, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateLabel(label); err != nil {
		return nil, err
	}

	sn, err := s.store.GetShortname(slug)
	if err != nil {
		return nil, types.Internal("Failed to read shortname", err)
	}
	if sn == nil {
		create := &models.Shortname{Slug: slug, Creator: creator}
		if err := s.store.CreateShortname(create); err != nil && !store.IsDuplicate(err) {
			return nil, types.Internal("Failed to create shortname", err)
		}
	}

	return s.Create(slug, label, description, isActive, creator)
}
