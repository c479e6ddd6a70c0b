// data.go
//
// Database fixtures for configdb tests.
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of configdb.
// configdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// configdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with configdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/localnerve/configdb/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB creates an in-memory SQLite database with the full schema migrated
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Shortname{},
		&models.Release{},
		&models.Version{},
		&models.Configuration{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestShortname inserts a shortname record
func CreateTestShortname(t *testing.T, db *gorm.DB, slug string) {
	t.Helper()
	sn := models.Shortname{
		Slug:    slug,
		Creator: "test",
	}
	if err := db.Create(&sn).Error; err != nil {
		t.Fatalf("Failed to create shortname %s: %v", slug, err)
	}
}

// CreateTestVersion inserts a version row scoped to a shortname
func CreateTestVersion(t *testing.T, db *gorm.DB, shortname, label string) {
	t.Helper()
	v := models.Version{
		ScopeKey:  models.ScopeKey(shortname, label),
		Shortname: shortname,
		Label:     label,
		Creator:   "test",
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("Failed to create version %s:%s: %v", shortname, label, err)
	}
}

// CreateTestConfiguration inserts a configuration with a JSON-marshaled value
func CreateTestConfiguration(t *testing.T, db *gorm.DB, shortname, label, key string, value interface{}) string {
	t.Helper()
	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("Failed to marshal configuration value: %v", err)
	}

	cfg := models.Configuration{
		ConfigID:  uuid.NewString(),
		ScopeKey:  models.ScopeKey(shortname, label),
		Shortname: shortname,
		Label:     label,
		Key:       key,
		Value:     models.JSON{JSON: datatypes.JSON(raw)},
		Creator:   "test",
	}
	if err := db.Create(&cfg).Error; err != nil {
		t.Fatalf("Failed to create configuration %s: %v", key, err)
	}
	return cfg.ConfigID
}
