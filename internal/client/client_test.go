package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tally/internal/api"
	"tally/internal/client"
	"tally/internal/config"
	"tally/internal/errkit"
	"tally/internal/offline"
	"tally/internal/testsupport"
)

func TestNewSelectsTransportByMode(t *testing.T) {
	local, err := client.New(testsupport.NewConfig(t, testsupport.WithMode(config.ModeLocal)), nil)
	if err != nil {
		t.Fatalf("local client: %v", err)
	}
	defer local.Close()
	if _, ok := local.(*client.Local); !ok {
		t.Fatalf("mode local built %T", local)
	}

	remote, err := client.New(testsupport.NewConfig(t, testsupport.WithMode(config.ModeHTTP)), nil)
	if err != nil {
		t.Fatalf("http client: %v", err)
	}
	defer remote.Close()
	if _, ok := remote.(*client.HTTP); !ok {
		t.Fatalf("mode http built %T", remote)
	}
}

func TestLocalClientRoundtrip(t *testing.T) {
	cl, err := client.New(testsupport.NewConfig(t, testsupport.WithMode(config.ModeLocal)), nil)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	defer cl.Close()

	ctx := context.Background()
	id, err := cl.Add(ctx, "2024", api.AddRequest{Name: "pants", Value: -99})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}

	element, err := cl.Get(ctx, "2024", "", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if element.Name != "pants" {
		t.Fatalf("element name = %q", element.Name)
	}
}

func TestHTTPClientClassifiesTransportFailureAsUnreachable(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithMode(config.ModeHTTP),
		testsupport.WithBaseURL("http://127.0.0.1:1"))

	cl := client.NewHTTP(cfg)
	_, err := cl.Add(context.Background(), "2024", api.AddRequest{Name: "pants", Value: -1})
	if !errors.Is(err, errkit.ErrUnreachable) {
		t.Fatalf("error = %v, want unreachable", err)
	}
}

func TestHTTPClientKeepsAPIErrorsOutOfUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "element 7 not found"})
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t,
		testsupport.WithMode(config.ModeHTTP),
		testsupport.WithBaseURL(server.URL))

	cl := client.NewHTTP(cfg)
	_, err := cl.Get(context.Background(), "2024", "standard", 7)
	if errors.Is(err, errkit.ErrUnreachable) {
		t.Fatalf("API errors must not classify as unreachable: %v", err)
	}
	if !errors.Is(err, errkit.ErrNotFound) {
		t.Fatalf("error = %v, want not-found", err)
	}
}

func TestApplyDispatchesBacklogRequests(t *testing.T) {
	cl, err := client.New(testsupport.NewConfig(t, testsupport.WithMode(config.ModeLocal)), nil)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	defer cl.Close()

	ctx := context.Background()
	add := api.AddRequest{Name: "rent", Value: -1000}
	if err := client.Apply(ctx, cl, offline.Request{
		Command: offline.CommandAdd,
		Period:  "2024",
		Add:     &add,
	}); err != nil {
		t.Fatalf("apply add: %v", err)
	}

	if err := client.Apply(ctx, cl, offline.Request{
		Command: offline.CommandRemove,
		Period:  "2024",
		EntryID: 1,
	}); err != nil {
		t.Fatalf("apply remove: %v", err)
	}

	if _, err := cl.Get(ctx, "2024", "", 1); !errors.Is(err, errkit.ErrNotFound) {
		t.Fatalf("entry should be removed, got %v", err)
	}
}

func TestApplyRejectsMalformedRequests(t *testing.T) {
	cl, err := client.New(testsupport.NewConfig(t, testsupport.WithMode(config.ModeLocal)), nil)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	defer cl.Close()

	ctx := context.Background()
	if err := client.Apply(ctx, cl, offline.Request{Command: offline.CommandAdd}); !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("add without payload = %v, want validation error", err)
	}
	if err := client.Apply(ctx, cl, offline.Request{Command: "rename"}); !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("unknown command = %v, want validation error", err)
	}
}
