package services_test

import (
	"encoding/json"
	"testing"

	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/testhelpers"
	"github.com/localnerve/configdb/internal/types"
)

func newVersionFixture(t *testing.T) (*store.Store, *services.VersionService, *services.ConfigurationService) {
	db := testhelpers.OpenTestDB(t)
	st := store.New(db)
	return st, services.NewVersionService(st), services.NewConfigurationService(st)
}

func TestVersionCreateRequiresShortname(t *testing.T) {
	_, versions, _ := newVersionFixture(t)

	_, err := versions.Create("missing", "1.0.0", "", false, "tester")
	if !types.IsNotFound(err) {
		t.Errorf("Expected NotFound for missing shortname, got %v", err)
	}
}

func TestVersionCreateAndGet(t *testing.T) {
	st, versions, _ := newVersionFixture(t)
	testhelpers.CreateTestShortname(t, st.DB(), "web-sdk")

	created, err := versions.Create("web-sdk", "1.0.0", "first release", true, "tester")
	if err != nil {
		t.Fatalf("Failed to create version: %v", err)
	}
	if created.ScopeKey != "web-sdk:1.0.0" {
		t.Errorf("Expected scope key 'web-sdk:1.0.0', got %q", created.ScopeKey)
	}

	got, err := versions.Get("web-sdk", "1.0.0")
	if err != nil {
		t.Fatalf("Failed to get version: %v", err)
	}
	if !got.IsActive {
		t.Error("Expected version to be active")
	}
}

func TestVersionCreateDuplicate(t *testing.T) {
	st, versions, _ := newVersionFixture(t)
	testhelpers.CreateTestShortname(t, st.DB(), "web-sdk")

	if _, err := versions.Create("web-sdk", "1.0.0", "", false, "tester"); err != nil {
		t.Fatalf("Failed to create version: %v", err)
	}
	_, err := versions.Create("web-sdk", "1.0.0", "", false, "tester")
	if !types.IsConflict(err) {
		t.Errorf("Expected Conflict, got %v", err)
	}
}

func TestVersionLabelValidation(t *testing.T) {
	st, versions, _ := newVersionFixture(t)
	testhelpers.CreateTestShortname(t, st.DB(), "web-sdk")

	for _, label := range []string{"", "1.0:beta", "has space"} {
		if _, err := versions.Create("web-sdk", label, "", false, "tester"); err == nil {
			t.Errorf("Expected validation error for label %q", label)
		}
	}
}

func TestVersionPartialUpdate(t *testing.T) {
	st, versions, _ := newVersionFixture(t)
	testhelpers.CreateTestShortname(t, st.DB(), "web-sdk")

	if _, err := versions.Create("web-sdk", "1.0.0", "first", true, "tester"); err != nil {
		t.Fatalf("Failed to create version: %v", err)
	}

	desc := "updated"
	updated, err := versions.Update("web-sdk", "1.0.0", &desc, nil)
	if err != nil {
		t.Fatalf("Failed to update version: %v", err)
	}
	if updated.Description != "updated" {
		t.Errorf("Expected updated description, got %q", updated.Description)
	}
	if !updated.IsActive {
		t.Error("Expected isActive to be untouched by description-only update")
	}

	inactive := false
	updated, err = versions.Update("web-sdk", "1.0.0", nil, &inactive)
	if err != nil {
		t.Fatalf("Failed to update version: %v", err)
	}
	if updated.IsActive {
		t.Error("Expected isActive false after flag-only update")
	}
	if updated.Description != "updated" {
		t.Errorf("Expected description untouched by flag-only update, got %q", updated.Description)
	}
}

func TestVersionDeleteCascadesConfigurations(t *testing.T) {
	st, versions, configurations := newVersionFixture(t)
	testhelpers.CreateTestShortname(t, st.DB(), "web-sdk")

	if _, err := versions.Create("web-sdk", "1.0.0", "", false, "tester"); err != nil {
		t.Fatalf("Failed to create version: %v", err)
	}
	if _, err := configurations.Create("web-sdk", "1.0.0", "timeout", json.RawMessage(`30`), "", "tester"); err != nil {
		t.Fatalf("Failed to create configuration: %v", err)
	}
	if _, err := configurations.Create("web-sdk", "1.0.0", "retries", json.RawMessage(`3`), "", "tester"); err != nil {
		t.Fatalf("Failed to create configuration: %v", err)
	}

	if err := versions.Delete("web-sdk", "1.0.0"); err != nil {
		t.Fatalf("Failed to delete version: %v", err)
	}

	if v, _ := st.GetVersion("web-sdk:1.0.0"); v != nil {
		t.Error("Expected version to be deleted")
	}
	if cs, _ := st.ListConfigurationsByScope("web-sdk:1.0.0"); len(cs) != 0 {
		t.Errorf("Expected no configurations after cascade, got %d", len(cs))
	}
}

func TestReleaseCreateDuplicate(t *testing.T) {
	_, versions, _ := newVersionFixture(t)

	if _, err := versions.CreateRelease("1.0.0", "", true, "tester"); err != nil {
		t.Fatalf("Failed to create release: %v", err)
	}
	_, err := versions.CreateRelease("1.0.0", "", true, "tester")
	if !types.IsConflict(err) {
		t.Errorf("Expected Conflict, got %v", err)
	}

	releases, err := versions.ListReleases()
	if err != nil {
		t.Fatalf("Failed to list releases: %v", err)
	}
	if len(releases) != 1 {
		t.Errorf("Expected 1 release, got %d", len(releases))
	}
}

func TestAssociateCreatesShortname(t *testing.T) {
	st, versions, _ := newVersionFixture(t)

	v, err := versions.Associate("new-app", "1.0.0", "", true, "tester")
	if err != nil {
		t.Fatalf("Failed to associate shortname: %v", err)
	}
	if v.ScopeKey != "new-app:1.0.0" {
		t.Errorf("Expected scope key 'new-app:1.0.0', got %q", v.ScopeKey)
	}

	sn, err := st.GetShortname("new-app")
	if err != nil {
		t.Fatalf("Failed to read shortname: %v", err)
	}
	if sn == nil {
		t.Fatal("Expected shortname to be created by association")
	}

	// Existing association conflicts
	_, err = versions.Associate("new-app", "1.0.0", "", true, "tester")
	if !types.IsConflict(err) {
		t.Errorf("Expected Conflict for existing association, got %v", err)
	}
}

func TestListForLabel(t *testing.T) {
	st, versions, _ := newVersionFixture(t)
	testhelpers.CreateTestShortname(t, st.DB(), "app-a")
	testhelpers.CreateTestShortname(t, st.DB(), "app-b")

	if _, err := versions.Create("app-a", "1.0.0", "", false, "tester"); err != nil {
		t.Fatalf("Failed to create version: %v", err)
	}
	if _, err := versions.Create("app-b", "1.0.0", "", false, "tester"); err != nil {
		t.Fatalf("Failed to create version: %v", err)
	}
	if _, err := versions.Create("app-a", "2.0.0", "", false, "tester"); err != nil {
		t.Fatalf("Failed to create version: %v", err)
	}

	labeled, err := versions.ListForLabel("1.0.0")
	if err != nil {
		t.Fatalf("Failed to list by label: %v", err)
	}
	if len(labeled) != 2 {
		t.Errorf("Expected 2 associations for label 1.0.0, got %d", len(labeled))
	}
}
