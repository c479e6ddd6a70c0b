package testhelpers

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"testing"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and special char
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// AcquireAccount performs register and login against the service to get an access token
func AcquireAccount(t *testing.T, baseURL, email, password, role string) string {
	t.Helper()

	registerBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
	resp, err := http.Post(fmt.Sprintf("%s/api/auth/register", baseURL), "application/json", bytes.NewReader(registerBody))
	if err != nil {
		t.Fatalf("Register request failed: %v", err)
	}
	// Register may 409 if the account exists from an earlier run
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		t.Fatalf("Register failed with status %d", resp.StatusCode)
	}
	resp.Body.Close()

	loginBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err = http.Post(fmt.Sprintf("%s/api/auth/login", baseURL), "application/json", bytes.NewReader(loginBody))
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login failed with status %d", resp.StatusCode)
	}

	var login struct {
		Token string `json:"token"`
	}
	ParseJSON(t, resp, &login)

	if login.Token == "" {
		t.Fatal("Access token is empty")
	}

	return login.Token
}
