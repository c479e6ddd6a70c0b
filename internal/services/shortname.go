package services

import (
	"fmt"

	"github.com/localnerve/configdb/internal/models"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/types"
)

// ShortnameService manages the Shortnames collection. It is the sole writer
// to that collection; cascading deletes walk descendant versions through the
// same delete path the VersionService uses.
type ShortnameService struct {
	store    *store.Store
	versions *VersionService
}

// NewShortnameService creates a ShortnameService.
func NewShortnameService(st *store.Store, versions *VersionService) *ShortnameService {
	return &ShortnameService{store: st, versions: versions}
}

// List returns all shortnames, unordered.
func (s *ShortnameService) List() ([]models.Shortname, error) {
	shortnames, err := s.store.ListShortnames()
	if err != nil {
		return nil, types.Internal("Failed to list shortnames", err)
	}
	return shortnames, nil
}

// Get returns the shortname for slug.
func (s *ShortnameService) Get(slug string) (*models.Shortname, error) {
	sn, err := s.store.GetShortname(slug)
	if err != nil {
		return nil, types.Internal("Failed to read shortname", err)
	}
	if sn == nil {
		return nil, types.NotFound(fmt.Sprintf("Shortname '%s' not found", slug))
	}
	return sn, nil
}

// Create stores a new shortname, rejecting duplicate slugs.
func (s *ShortnameService) Create(slug, description, creator string) (*models.Shortname, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	existing, err := s.store.GetShortname(slug)
	if err != nil {
		return nil, types.Internal("Failed to read shortname", err)
	}
	if existing != nil {
		return nil, types.Conflict(fmt.Sprintf("Shortname '%s' already exists", slug))
	}

	sn := &models.Shortname{
		Slug:        slug,
		Description: description,
		Creator:     creator,
	}
	if err := s.store.CreateShortname(sn); err != nil {
		if store.IsDuplicate(err) {
			return nil, types.Conflict(fmt.Sprintf("Shortname '%s' already exists", slug))
		}
		return nil, types.Internal("Failed to create shortname", err)
	}
	return sn, nil
}

// Update merges a supplied description into an existing shortname. The slug is
// immutable; a nil description leaves the stored value untouched.
func (s *ShortnameService) Update(slug string, description *string) (*models.Shortname, error) {
	sn, err := s.Get(slug)
	if err != nil {
		return nil, err
	}

	if description != nil {
		sn.Description = *description
	}
	if err := s.store.SaveShortname(sn); err != nil {
		return nil, types.Internal("Failed to update shortname", err)
	}
	return sn, nil
}

// Delete removes a shortname and cascades through every owned version and its
// configurations first: configurations before their version, all versions
// before the shortname. The cascade is forward-only and best-effort; a failure
// mid-cascade stops the delete and can leave descendants for the caller to
// inspect, but never orphans a child under a deleted parent.
func (s *ShortnameService) Delete(slug string) error {
	sn, err := s.Get(slug)
	if err != nil {
		return err
	}

	versions, err := s.store.ListVersionsByShortname(slug)
	if err != nil {
		return types.Internal("Failed to list versions for shortname", err)
	}

	for _, v := range versions {
		if err := s.versions.Delete(v.Shortname, v.Label); err != nil {
			return err
		}
	}

	if err := s.store.DeleteShortname(sn); err != nil {
		return types.Internal("Failed to delete shortname", err)
	}
	return nil
}
