package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestLoader_BuiltIn(t *testing.T) {
	cat, err := NewLoader(hclog.NewNullLogger()).Load(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.Plans()) != 4 {
		t.Errorf("expected built-in catalog with 4 plans, got %d", len(cat.Plans()))
	}
}

func TestLoader_File(t *testing.T) {
	cat, err := NewLoader(nil).Load(context.Background(), filepath.Join("testdata", "pricelist.hcl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Name() != "revendamais" {
		t.Errorf("unexpected catalog name %q", cat.Name())
	}
}

func TestLoader_Remote(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "pricelist.hcl"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pricelist.hcl" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer server.Close()

	loader := NewLoader(hclog.NewNullLogger())

	t.Run("success", func(t *testing.T) {
		cat, err := loader.Load(context.Background(), server.URL+"/pricelist.hcl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cat.Plans()) != 2 {
			t.Errorf("expected 2 plans, got %d", len(cat.Plans()))
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := loader.Load(context.Background(), server.URL+"/missing.hcl"); err == nil {
			t.Fatal("expected error for missing remote price list")
		}
	})
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/p.hcl": true,
		"http://localhost/p.hcl":    true,
		"pricelist.hcl":             false,
		"":                          false,
	}
	for source, expected := range tests {
		if IsRemote(source) != expected {
			t.Errorf("IsRemote(%q) = %v, want %v", source, !expected, expected)
		}
	}
}
