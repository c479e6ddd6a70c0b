// Package store is the entity store adapter: uniform get/put/update/delete and
// query-by-secondary-index operations over the backing collections. Every
// manager receives an injected *Store; nothing else touches gorm directly, so
// tests can substitute an in-memory SQLite database.
package store

import (
	"errors"

	"github.com/localnerve/configdb/internal/models"
	"gorm.io/gorm"
)

// Store wraps a gorm connection with typed per-collection operations.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an open gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// IsDuplicate reports whether err is a store uniqueness violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// first runs a query and maps record-not-found to (found=false, nil error).
func first(tx *gorm.DB, dest interface{}) (bool, error) {
	if err := tx.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Shortnames

func (s *Store) GetShortname(slug string) (*models.Shortname, error) {
	var sn models.Shortname
	found, err := first(s.db.Where("slug = ?", slug), &sn)
	if err != nil || !found {
		return nil, err
	}
	return &sn, nil
}

func (s *Store) ListShortnames() ([]models.Shortname, error) {
	var shortnames []models.Shortname
	if err := s.db.Find(&shortnames).Error; err != nil {
		return nil, err
	}
	return shortnames, nil
}

func (s *Store) CreateShortname(sn *models.Shortname) error {
	return s.db.Create(sn).Error
}

func (s *Store) SaveShortname(sn *models.Shortname) error {
	return s.db.Save(sn).Error
}

func (s *Store) DeleteShortname(sn *models.Shortname) error {
	return s.db.Delete(sn).Error
}

// Releases

func (s *Store) GetRelease(label string) (*models.Release, error) {
	var rel models.Release
	found, err := first(s.db.Where("version_label = ?", label), &rel)
	if err != nil || !found {
		return nil, err
	}
	return &rel, nil
}

func (s *Store) ListReleases() ([]models.Release, error) {
	var releases []models.Release
	if err := s.db.Find(&releases).Error; err != nil {
		return nil, err
	}
	return releases, nil
}

func (s *Store) CreateRelease(rel *models.Release) error {
	return s.db.Create(rel).Error
}

// Versions

func (s *Store) GetVersion(scopeKey string) (*models.Version, error) {
	var v models.Version
	found, err := first(s.db.Where("scope_key = ?", scopeKey), &v)
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}

// ListVersionsByShortname queries the secondary index over the shortname attribute.
func (s *Store) ListVersionsByShortname(slug string) ([]models.Version, error) {
	var versions []models.Version
	if err := s.db.Where("shortname = ?", slug).Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

// ListVersionsByLabel queries the secondary index over the version label attribute.
func (s *Store) ListVersionsByLabel(label string) ([]models.Version, error) {
	var versions []models.Version
	if err := s.db.Where("version_label = ?", label).Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (s *Store) CreateVersion(v *models.Version) error {
	return s.db.Create(v).Error
}

func (s *Store) SaveVersion(v *models.Version) error {
	return s.db.Save(v).Error
}

func (s *Store) DeleteVersion(v *models.Version) error {
	return s.db.Delete(v).Error
}

// Configurations

func (s *Store) GetConfiguration(configID string) (*models.Configuration, error) {
	var c models.Configuration
	found, err := first(s.db.Where("config_id = ?", configID), &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

// ListConfigurationsByScope queries the secondary index over the scope key.
func (s *Store) ListConfigurationsByScope(scopeKey string) ([]models.Configuration, error) {
	var configs []models.Configuration
	if err := s.db.Where("scope_key = ?", scopeKey).Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

func (s *Store) CreateConfiguration(c *models.Configuration) error {
	return s.db.Create(c).Error
}

func (s *Store) SaveConfiguration(c *models.Configuration) error {
	return s.db.Save(c).Error
}

func (s *Store) DeleteConfiguration(c *models.Configuration) error {
	return s.db.Delete(c).Error
}

// Users

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	found, err := first(s.db.Where("email = ?", email), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByID(userID string) (*models.User, error) {
	var u models.User
	found, err := first(s.db.Where("user_id = ?", userID), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(u *models.User) error {
	return s.db.Create(u).Error
}
