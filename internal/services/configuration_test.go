package services_test

import (
	"encoding/json"
	"testing"

	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/testhelpers"
	"github.com/localnerve/configdb/internal/types"
)

func newConfigurationFixture(t *testing.T) (*store.Store, *services.ConfigurationService) {
	db := testhelpers.OpenTestDB(t)
	st := store.New(db)
	testhelpers.CreateTestShortname(t, db, "web-sdk")
	testhelpers.CreateTestVersion(t, db, "web-sdk", "1.0.0")
	return st, services.NewConfigurationService(st)
}

func TestConfigurationCreateRequiresParents(t *testing.T) {
	_, configurations := newConfigurationFixture(t)

	_, err := configurations.Create("missing", "1.0.0", "timeout", json.RawMessage(`30`), "", "tester")
	if !types.IsNotFound(err) {
		t.Errorf("Expected NotFound for missing shortname, got %v", err)
	}

	_, err = configurations.Create("web-sdk", "9.9.9", "timeout", json.RawMessage(`30`), "", "tester")
	if !types.IsNotFound(err) {
		t.Errorf("Expected NotFound for missing version, got %v", err)
	}
}

func TestConfigurationCreateRequiresKey(t *testing.T) {
	_, configurations := newConfigurationFixture(t)

	_, err := configurations.Create("web-sdk", "1.0.0", "", json.RawMessage(`30`), "", "tester")
	if err == nil {
		t.Error("Expected error for empty key")
	}
}

func TestConfigurationKeyUniquePerScope(t *testing.T) {
	st, configurations := newConfigurationFixture(t)
	testhelpers.CreateTestVersion(t, st.DB(), "web-sdk", "2.0.0")

	if _, err := configurations.Create("web-sdk", "1.0.0", "timeout", json.RawMessage(`30`), "", "tester"); err != nil {
		t.Fatalf("Failed to create configuration: %v", err)
	}

	_, err := configurations.Create("web-sdk", "1.0.0", "timeout", json.RawMessage(`60`), "", "tester")
	if !types.IsConflict(err) {
		t.Errorf("Expected Conflict for duplicate key in scope, got %v", err)
	}

	// Same key in a different scope is fine
	if _, err := configurations.Create("web-sdk", "2.0.0", "timeout", json.RawMessage(`60`), "", "tester"); err != nil {
		t.Errorf("Expected same key in another scope to succeed, got %v", err)
	}
}

func TestConfigurationGetScopeChecked(t *testing.T) {
	st, configurations := newConfigurationFixture(t)
	testhelpers.CreateTestVersion(t, st.DB(), "web-sdk", "2.0.0")

	created, err := configurations.Create("web-sdk", "1.0.0", "timeout", json.RawMessage(`30`), "", "tester")
	if err != nil {
		t.Fatalf("Failed to create configuration: %v", err)
	}

	if _, err := configurations.Get("web-sdk", "1.0.0", created.ConfigID); err != nil {
		t.Errorf("Expected in-scope get to succeed, got %v", err)
	}

	_, err = configurations.Get("web-sdk", "2.0.0", created.ConfigID)
	if !types.IsNotFound(err) {
		t.Errorf("Expected NotFound for out-of-scope get, got %v", err)
	}
}

func TestConfigurationDefaultNullValue(t *testing.T) {
	_, configurations := newConfigurationFixture(t)

	created, err := configurations.Create("web-sdk", "1.0.0", "flag", nil, "", "tester")
	if err != nil {
		t.Fatalf("Failed to create configuration: %v", err)
	}
	if string(created.Value.JSON) != "null" {
		t.Errorf("Expected omitted value to default to JSON null, got %q", string(created.Value.JSON))
	}
}

func TestConfigurationUpdate(t *testing.T) {
	_, configurations := newConfigurationFixture(t)

	created, err := configurations.Create("web-sdk", "1.0.0", "timeout", json.RawMessage(`30`), "initial", "tester")
	if err != nil {
		t.Fatalf("Failed to create configuration: %v", err)
	}

	desc := "tuned"
	updated, err := configurations.Update("web-sdk", "1.0.0", created.ConfigID, json.RawMessage(`60`), &desc)
	if err != nil {
		t.Fatalf("Failed to update configuration: %v", err)
	}
	if string(updated.Value.JSON) != "60" {
		t.Errorf("Expected value 60, got %q", string(updated.Value.JSON))
	}
	if updated.Description != "tuned" {
		t.Errorf("Expected updated description, got %q", updated.Description)
	}
	if updated.Key != "timeout" {
		t.Errorf("Expected key to be immutable, got %q", updated.Key)
	}

	// Value-only update leaves description alone
	updated, err = configurations.Update("web-sdk", "1.0.0", created.ConfigID, json.RawMessage(`90`), nil)
	if err != nil {
		t.Fatalf("Failed to update configuration: %v", err)
	}
	if updated.Description != "tuned" {
		t.Errorf("Expected description untouched, got %q", updated.Description)
	}
}

func TestConfigurationDelete(t *testing.T) {
	st, configurations := newConfigurationFixture(t)

	created, err := configurations.Create("web-sdk", "1.0.0", "timeout", json.RawMessage(`30`), "", "tester")
	if err != nil {
		t.Fatalf("Failed to create configuration: %v", err)
	}

	if err := configurations.Delete("web-sdk", "1.0.0", created.ConfigID); err != nil {
		t.Fatalf("Failed to delete configuration: %v", err)
	}
	if c, _ := st.GetConfiguration(created.ConfigID); c != nil {
		t.Error("Expected configuration to be deleted")
	}

	err = configurations.Delete("web-sdk", "1.0.0", created.ConfigID)
	if !types.IsNotFound(err) {
		t.Errorf("Expected NotFound for second delete, got %v", err)
	}
}
