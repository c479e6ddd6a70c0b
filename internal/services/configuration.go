package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/localnerve/configdb/internal/models"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/types"
	"gorm.io/datatypes"
)

// ConfigurationService manages the Configurations collection: key/value
// entries scoped to one (shortname, version) pair.
type ConfigurationService struct {
	store *store.Store
}

// NewConfigurationService creates a ConfigurationService.
func NewConfigurationService(st *store.Store) *ConfigurationService {
	return &ConfigurationService{store: st}
}

// ListForScope returns configurations whose scope key equals slug:label.
func (s *ConfigurationService) ListForScope(slug, label string) ([]models.Configuration, error) {
	configs, err := s.store.ListConfigurationsByScope(models.ScopeKey(slug, label))
	if err != nil {
		return nil, types.Internal("Failed to list configurations", err)
	}
	return configs, nil
}

// Get fetches a configuration by id. The id space is global but access is
// always scope-qualified: a record whose scope does not match slug:label is
// reported as NotFound.
func (s *ConfigurationService) Get(slug, label, configID string) (*models.Configuration, error) {
	c, err := s.store.GetConfiguration(configID)
	if err != nil {
		return nil, types.Internal("Failed to read configuration", err)
	}
	if c == nil || c.ScopeKey != models.ScopeKey(slug, label) {
		return nil, types.NotFound(fmt.Sprintf("Configuration '%s' not found in scope '%s:%s'", configID, slug, label))
	}
	return c, nil
}

// Create stores a new configuration under (slug, label). The shortname and
// version existence gates run in order before the in-scope key uniqueness
// check; only then is a fresh id generated and the record written.
func (s *ConfigurationService) Create(slug, label, key string, value json.RawMessage, description, creator string) (*models.Configuration, error) {
	if key == "" {
		return nil, types.BadRequest("key is required")
	}

	sn, err := s.store.GetShortname(slug)
	if err != nil {
		return nil, types.Internal("Failed to read shortname", err)
	}
	if sn == nil {
		return nil, types.NotFound(fmt.Sprintf("Shortname '%s' not found", slug))
	}

	scopeKey := models.ScopeKey(slug, label)
	v, err := s.store.GetVersion(scopeKey)
	if err != nil {
		return nil, types.Internal("Failed to read version", err)
	}
	if v == nil {
		return nil, types.NotFound(fmt.Sprintf("Version '%s' not found for shortname '%s'", label, slug))
	}

	siblings, err := s.store.ListConfigurationsByScope(scopeKey)
	if err != nil {
		return nil, types.Internal("Failed to list configurations", err)
	}
	for _, sibling := range siblings {
		if sibling.Key == key {
			return nil, types.Conflict(fmt.Sprintf("Configuration key '%s' already exists in scope '%s'", key, scopeKey))
		}
	}

	if len(value) == 0 {
		value = json.RawMessage("null")
	}
	c := &models.Configuration{
		ConfigID:    uuid.NewString(),
		ScopeKey:    scopeKey,
		Shortname:   slug,
		Label:       label,
		Key:         key,
		Value:       models.JSON{JSON: datatypes.JSON(value)},
		Description: description,
		Creator:     creator,
	}
	if err := s.store.CreateConfiguration(c); err != nil {
		if store.IsDuplicate(err) {
			return nil, types.Conflict(fmt.Sprintf("Configuration key '%s' already exists in scope '%s'", key, scopeKey))
		}
		return nil, types.Internal("Failed to create configuration", err)
	}
	return c, nil
}

// Update merges the supplied value and/or description into a scope-checked
// configuration. Key and scope are immutable; supplied values for either are
// ignored by the handlers before this call.
func (s *ConfigurationService) Update(slug, label, configID string, value json.RawMessage, description *string) (*models.Configuration, error) {
	c, err := s.Get(slug, label, configID)
	if err != nil {
		return nil, err
	}

	if len(value) > 0 {
		c.Value = models.JSON{JSON: datatypes.JSON(value)}
	}
	if description != nil {
		c.Description = *description
	}
	if err := s.store.SaveConfiguration(c); err != nil {
		return nil, types.Internal("Failed to update configuration", err)
	}
	return c, nil
}

// Delete removes a scope-checked configuration.
func (s *ConfigurationService) Delete(slug, label, configID string) error {
	c, err := s.Get(slug, label, configID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteConfiguration(c); err != nil {
		return types.Internal("Failed to delete configuration", err)
	}
	return nil
}
