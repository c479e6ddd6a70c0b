// e2e_test.go
//
// Full-stack tests running the service and its database in containers.
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

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/configdb/internal/config"
	"github.com/localnerve/configdb/internal/database"
	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/testhelpers"
)

// TestE2EWithFullStack tests the entire service stack
func TestE2EWithFullStack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	ctx := context.Background()

	tc, err := testhelpers.CreateAllTestContainers(t)
	if err != nil {
		t.Fatalf("Failed to start test containers: %v", err)
	}
	defer tc.Terminate(t)

	configdbHost, _ := tc.ConfigDBContainer.Host(ctx)
	configdbPort, _ := tc.ConfigDBContainer.MappedPort(ctx, "3000")
	baseURL := fmt.Sprintf("http://%s:%s", configdbHost, configdbPort.Port())

	// Wait a bit for everything to stabilize
	time.Sleep(5 * time.Second)

	t.Run("HealthCheck", func(t *testing.T) {
		testHealthCheck(t, tc)
	})

	t.Run("PrometheusMetrics", func(t *testing.T) {
		testPrometheusMetrics(t, baseURL)
	})

	t.Run("SwaggerUI", func(t *testing.T) {
		testSwaggerUI(t, baseURL)
	})

	t.Run("UnauthenticatedAccess", func(t *testing.T) {
		testUnauthenticatedAccess(t, baseURL)
	})

	t.Run("ConfigurationLifecycle", func(t *testing.T) {
		testConfigurationLifecycle(t, baseURL)
	})
}

func testHealthCheck(t *testing.T, tc *testhelpers.TestContainers) {
	ctx := context.Background()

	// Point to the mapped ports on localhost, not internal container names
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	dbHost, _ := tc.DBContainer.Host(ctx)
	dbPort, _ := tc.DBContainer.MappedPort(ctx, "3306")
	cfg.DBHost = dbHost
	cfg.DBPort = dbPort.Port()

	gormDB, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	defer database.Close(gormDB)

	result := services.HealthCheck(cfg, gormDB)

	if result.Status != "healthy" {
		t.Errorf("Health check failed: %+v", result)
	}

	t.Logf("Health check passed: status=%s, database=%s", result.Status, result.Database)
}

func testPrometheusMetrics(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/metrics")
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for metrics, got %d. Body: %s", resp.StatusCode, string(body))
	}
}

func testSwaggerUI(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/swagger/index.html")
	if err != nil {
		t.Fatalf("Failed to get swagger UI: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for swagger UI, got %d", resp.StatusCode)
	}
}

func testUnauthenticatedAccess(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/api/shortnames")
	if err != nil {
		t.Fatalf("Failed to get shortnames: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a credential, got %d", resp.StatusCode)
	}

	// Health stays public
	resp, err = http.Get(baseURL + "/api/health")
	if err != nil {
		t.Fatalf("Failed to get health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 for public health, got %d", resp.StatusCode)
	}
}

// testConfigurationLifecycle drives the full shortname/version/configuration
// flow over HTTP, including duplication of a whole version label.
func testConfigurationLifecycle(t *testing.T, baseURL string) {
	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	token := testhelpers.AcquireAccount(t, baseURL, email, testhelpers.GeneratePassword(), "admin")

	do := func(method, path string, body interface{}) *http.Response {
		t.Helper()
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("Failed to marshal body: %v", err)
			}
			reader = bytes.NewReader(raw)
		}
		req, err := http.NewRequest(method, baseURL+path, reader)
		if err != nil {
			t.Fatalf("Failed to build request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Request %s %s failed: %v", method, path, err)
		}
		return resp
	}

	resp := do("POST", "/api/shortnames", map[string]string{"shortname": "web-sdk"})
	testhelpers.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = do("POST", "/api/shortnames/web-sdk/versions", map[string]interface{}{
		"version":  "1.0.0",
		"isActive": true,
	})
	testhelpers.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = do("POST", "/api/shortnames/web-sdk/versions/1.0.0/configurations", map[string]interface{}{
		"key":   "endpoint",
		"value": "https://api.example.com",
	})
	testhelpers.AssertStatus(t, resp, http.StatusCreated)
	var created struct {
		ConfigID string `json:"configId"`
	}
	testhelpers.ParseJSON(t, resp, &created)
	if created.ConfigID == "" {
		t.Fatal("Expected a generated configId")
	}

	resp = do("POST", "/api/versions/1.0.0/duplicate", map[string]interface{}{
		"version":  "2.0.0",
		"isActive": true,
	})
	testhelpers.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = do("GET", "/api/shortnames/web-sdk/versions/2.0.0/configurations", nil)
	testhelpers.AssertStatus(t, resp, http.StatusOK)
	var copied []struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	testhelpers.ParseJSON(t, resp, &copied)
	if len(copied) != 1 || copied[0].Key != "endpoint" {
		t.Errorf("Expected the configuration to be copied to 2.0.0, got %+v", copied)
	}

	resp = do("DELETE", "/api/shortnames/web-sdk", nil)
	testhelpers.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = do("GET", "/api/shortnames/web-sdk", nil)
	testhelpers.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}
