package httpapi

import (
	"net/http"
	"strings"
	"testing"
)

func TestRegisterEndpoint(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/register", map[string]any{"username": "alice"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields code %v", w.Code)
	}
	var body map[string]any
	decode(t, w, &body)
	if body["success"] != false || body["message"] != "Please provide username, email, and password" {
		t.Fatalf("missing fields body: %+v", body)
	}

	w = doJSON(t, s, http.MethodPost, "/api/register", map[string]any{
		"username": "alice", "email": "alice@example.com", "password": "123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("weak password code %v", w.Code)
	}
	decode(t, w, &body)
	if body["message"] != "Password must be at least 6 characters long" {
		t.Fatalf("weak password body: %+v", body)
	}

	w = doJSON(t, s, http.MethodPost, "/api/register", map[string]any{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register code %v: %s", w.Code, w.Body.String())
	}
	decode(t, w, &body)
	if body["success"] != true || body["message"] != "User registered successfully" {
		t.Fatalf("register body: %+v", body)
	}
	user, _ := body["user"].(map[string]any)
	if user["username"] != "alice" || user["id"] != float64(1) {
		t.Fatalf("registered user: %+v", user)
	}

	// same username, different email
	w = doJSON(t, s, http.MethodPost, "/api/register", map[string]any{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate username code %v", w.Code)
	}
	decode(t, w, &body)
	if body["message"] != "Username or email already exists" {
		t.Fatalf("duplicate body: %+v", body)
	}

	// same email, different username
	w = doJSON(t, s, http.MethodPost, "/api/register", map[string]any{
		"username": "alice2", "email": "alice@example.com", "password": "secret123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate email code %v", w.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/register", map[string]any{
		"username": "bob", "email": "bob@example.com", "password": "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register code %v", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/login", map[string]any{"username": "bob"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password code %v", w.Code)
	}

	var body map[string]any
	// unknown user and wrong password answer identically
	for _, creds := range []map[string]any{
		{"username": "nobody", "password": "hunter22"},
		{"username": "bob", "password": "wrong"},
	} {
		w = doJSON(t, s, http.MethodPost, "/api/login", creds)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("login %v code %v", creds, w.Code)
		}
		decode(t, w, &body)
		if body["message"] != "Invalid username or password" {
			t.Fatalf("login %v body: %+v", creds, body)
		}
	}

	w = doJSON(t, s, http.MethodPost, "/api/login", map[string]any{"username": "bob", "password": "hunter22"})
	if w.Code != http.StatusOK {
		t.Fatalf("login code %v: %s", w.Code, w.Body.String())
	}
	decode(t, w, &body)
	if body["success"] != true || body["message"] != "Login successful" {
		t.Fatalf("login body: %+v", body)
	}
}

func TestRegisteredUsersEndpoint(t *testing.T) {
	s := setupServer(t)
	for _, u := range []string{"carol", "dave"} {
		w := doJSON(t, s, http.MethodPost, "/api/register", map[string]any{
			"username": u, "email": u + "@example.com", "password": "secret123",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("register %s code %v", u, w.Code)
		}
	}

	w := doJSON(t, s, http.MethodGet, "/api/registered-users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code %v", w.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Users   []struct {
			Username string `json:"username"`
		} `json:"users"`
	}
	decode(t, w, &body)
	if !body.Success || len(body.Users) != 2 {
		t.Fatalf("body: %+v", body)
	}
	if strings.Contains(strings.ToLower(w.Body.String()), "password") {
		t.Fatalf("password material leaked: %s", w.Body.String())
	}
}
