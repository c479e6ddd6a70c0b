package services_test

import (
	"encoding/json"
	"testing"

	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/testhelpers"
	"github.com/localnerve/configdb/internal/types"
)

func newShortnameFixture(t *testing.T) (*store.Store, *services.ShortnameService, *services.VersionService, *services.ConfigurationService) {
	db := testhelpers.OpenTestDB(t)
	st := store.New(db)
	versions := services.NewVersionService(st)
	shortnames := services.NewShortnameService(st, versions)
	configurations := services.NewConfigurationService(st)
	return st, shortnames, versions, configurations
}

func TestShortnameCreateAndGet(t *testing.T) {
	_, shortnames, _, _ := newShortnameFixture(t)

	created, err := shortnames.Create("web-sdk", "Web SDK properties", "tester")
	if err != nil {
		t.Fatalf("Failed to create shortname: %v", err)
	}
	if created.Slug != "web-sdk" {
		t.Errorf("Expected slug 'web-sdk', got %q", created.Slug)
	}

	got, err := shortnames.Get("web-sdk")
	if err != nil {
		t.Fatalf("Failed to get shortname: %v", err)
	}
	if got.Description != "Web SDK properties" {
		t.Errorf("Expected description to round-trip, got %q", got.Description)
	}
}

func TestShortnameGetMissing(t *testing.T) {
	_, shortnames, _, _ := newShortnameFixture(t)

	_, err := shortnames.Get("nope")
	if !types.IsNotFound(err) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestShortnameCreateDuplicate(t *testing.T) {
	_, shortnames, _, _ := newShortnameFixture(t)

	if _, err := shortnames.Create("web-sdk", "", "tester"); err != nil {
		t.Fatalf("Failed to create shortname: %v", err)
	}
	_, err := shortnames.Create("web-sdk", "again", "tester")
	if !types.IsConflict(err) {
		t.Errorf("Expected Conflict, got %v", err)
	}
}

func TestShortnameCreateInvalidSlug(t *testing.T) {
	_, shortnames, _, _ := newShortnameFixture(t)

	for _, slug := range []string{"", "Has Space", "UPPER", "colon:slug"} {
		if _, err := shortnames.Create(slug, "", "tester"); err == nil {
			t.Errorf("Expected validation error for slug %q", slug)
		}
	}
}

func TestShortnameUpdate(t *testing.T) {
	_, shortnames, _, _ := newShortnameFixture(t)

	if _, err := shortnames.Create("web-sdk", "old", "tester"); err != nil {
		t.Fatalf("Failed to create shortname: %v", err)
	}
	desc := "new description"
	updated, err := shortnames.Update("web-sdk", &desc)
	if err != nil {
		t.Fatalf("Failed to update shortname: %v", err)
	}
	if updated.Description != "new description" {
		t.Errorf("Expected updated description, got %q", updated.Description)
	}

	// A nil description is a no-op, not a clear.
	unchanged, err := shortnames.Update("web-sdk", nil)
	if err != nil {
		t.Fatalf("Failed to update shortname with nil description: %v", err)
	}
	if unchanged.Description != "new description" {
		t.Errorf("Expected description untouched, got %q", unchanged.Description)
	}

	other := "whatever"
	_, err = shortnames.Update("missing", &other)
	if !types.IsNotFound(err) {
		t.Errorf("Expected NotFound for missing shortname, got %v", err)
	}
}

func TestShortnameDeleteCascade(t *testing.T) {
	st, shortnames, versions, configurations := newShortnameFixture(t)

	if _, err := shortnames.Create("web-sdk", "", "tester"); err != nil {
		t.Fatalf("Failed to create shortname: %v", err)
	}
	for _, label := range []string{"1.0.0", "2.0.0"} {
		if _, err := versions.Create("web-sdk", label, "", true, "tester"); err != nil {
			t.Fatalf("Failed to create version %s: %v", label, err)
		}
		if _, err := configurations.Create("web-sdk", label, "timeout", json.RawMessage(`30`), "", "tester"); err != nil {
			t.Fatalf("Failed to create configuration for %s: %v", label, err)
		}
	}

	if err := shortnames.Delete("web-sdk"); err != nil {
		t.Fatalf("Failed to delete shortname: %v", err)
	}

	if sn, _ := st.GetShortname("web-sdk"); sn != nil {
		t.Error("Expected shortname to be deleted")
	}
	if vs, _ := st.ListVersionsByShortname("web-sdk"); len(vs) != 0 {
		t.Errorf("Expected no versions after cascade, got %d", len(vs))
	}
	for _, label := range []string{"1.0.0", "2.0.0"} {
		if cs, _ := st.ListConfigurationsByScope("web-sdk:" + label); len(cs) != 0 {
			t.Errorf("Expected no configurations for %s after cascade, got %d", label, len(cs))
		}
	}
}

func TestShortnameDeleteMissing(t *testing.T) {
	_, shortnames, _, _ := newShortnameFixture(t)

	err := shortnames.Delete("missing")
	if !types.IsNotFound(err) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}
