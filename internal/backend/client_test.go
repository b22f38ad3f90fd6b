// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the planrun plan API.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeranaias/planrun-tui/internal/model"
)

func newTestClient(url string) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL: url,
		Timeout: 2 * time.Second,
	})
}

// =============================================================================
// CRUD TESTS
// =============================================================================

func TestClient_ListPlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/plans" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]model.Plan{
			{ID: 1, Title: "A", Steps: []model.Step{{Description: "s"}}},
			{ID: 2, Title: "B"},
		})
	}))
	defer srv.Close()

	plans, err := newTestClient(srv.URL).ListPlans(context.Background())
	if err != nil {
		t.Fatalf("ListPlans() error: %v", err)
	}
	if len(plans) != 2 || plans[0].ID != 1 || plans[0].Steps[0].Description != "s" {
		t.Errorf("ListPlans() = %+v", plans)
	}
}

func TestClient_CreatePlan_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/plans" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var plan model.Plan
		if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
			t.Fatalf("decode: %v", err)
		}
		plan.ID = 42
		json.NewEncoder(w).Encode(plan)
	}))
	defer srv.Close()

	draft := model.Plan{
		Title:       "T",
		Description: "D",
		Steps:       []model.Step{{Description: "S1"}},
	}
	created, err := newTestClient(srv.URL).CreatePlan(context.Background(), draft)
	if err != nil {
		t.Fatalf("CreatePlan() error: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("CreatePlan() id = %d, want assigned id", created.ID)
	}
	if created.Title != "T" || created.Description != "D" || len(created.Steps) != 1 {
		t.Errorf("CreatePlan() altered content: %+v", created)
	}
}

func TestClient_UpdatePlan_PathCarriesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/plans/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var plan model.Plan
		json.NewDecoder(r.Body).Decode(&plan)
		plan.ID = 7
		json.NewEncoder(w).Encode(plan)
	}))
	defer srv.Close()

	updated, err := newTestClient(srv.URL).UpdatePlan(context.Background(), 7, model.Plan{Title: "New"})
	if err != nil {
		t.Fatalf("UpdatePlan() error: %v", err)
	}
	if updated.ID != 7 || updated.Title != "New" {
		t.Errorf("UpdatePlan() = %+v", updated)
	}
}

func TestClient_DeletePlan(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"detail": "Plan deleted"})
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).DeletePlan(context.Background(), 3); err != nil {
		t.Fatalf("DeletePlan() error: %v", err)
	}
	if gotPath != "DELETE /plans/3" {
		t.Errorf("request = %q", gotPath)
	}
}

// =============================================================================
// ERROR MAPPING TESTS
// =============================================================================

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType ErrorType
	}{
		{"not found", http.StatusNotFound, ErrTypeNotFound},
		{"server error", http.StatusInternalServerError, ErrTypeServer},
		{"bad request", http.StatusBadRequest, ErrTypeServer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).GetPlan(context.Background(), 1)
			var clientErr *ClientError
			if !errors.As(err, &clientErr) {
				t.Fatalf("error = %v, want *ClientError", err)
			}
			if clientErr.Type != tc.wantType {
				t.Errorf("type = %v, want %v", clientErr.Type, tc.wantType)
			}
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := newTestClient(srv.URL).CheckHealth(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("error = %v, want ErrUnreachable", err)
	}
}

// =============================================================================
// SUGGEST TESTS
// =============================================================================

func TestClient_Suggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/suggest" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req suggestRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Document != "release notes" {
			t.Errorf("document = %q", req.Document)
		}
		json.NewEncoder(w).Encode(model.SuggestionResult{
			Title: "From server",
			Steps: []string{"one"},
		})
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Suggest(context.Background(), "release notes")
	if err != nil {
		t.Fatalf("Suggest() error: %v", err)
	}
	if result.Title != "From server" || len(result.Steps) != 1 {
		t.Errorf("Suggest() = %+v", result)
	}
}
