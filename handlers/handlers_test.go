package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"corpfinityAPI/middleware"
)

func TestAuthedUserIDMissingContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/user", nil)
	rec := httptest.NewRecorder()

	_, ok := authedUserID(rec, req)
	if ok {
		t.Fatal("expected failure without an authenticated context")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthedUserIDRejectsNonUUID(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/user", nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, "not-a-uuid")
	rec := httptest.NewRecorder()

	_, ok := authedUserID(rec, req.WithContext(ctx))
	if ok {
		t.Fatal("expected failure for a non-UUID subject")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthedUserIDParsesSubject(t *testing.T) {
	want := uuid.New()
	req := httptest.NewRequest("GET", "/api/v1/user", nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, want.String())
	rec := httptest.NewRecorder()

	got, ok := authedUserID(rec, req.WithContext(ctx))
	if !ok {
		t.Fatalf("expected success, got %d: %s", rec.Code, rec.Body.String())
	}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["message"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithError(rec, http.StatusNotFound, "Reminder not found")

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["error"] != "Reminder not found" {
		t.Errorf("unexpected error body: %v", body)
	}
}
