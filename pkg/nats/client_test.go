package nats

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/nats-io/nkeys"
	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/quote"
)

// TestNATSConnection_Integration tests an actual NATS connection
// Run with: NATS_SERVERS=... NATS_CLIENT_PRIVATE_KEY=... go test -v -run TestNATSConnection_Integration
func TestNATSConnection_Integration(t *testing.T) {
	servers := os.Getenv("NATS_SERVERS")
	seed := os.Getenv("NATS_CLIENT_PRIVATE_KEY")
	prefix := os.Getenv("NATS_STREAM_PREFIX")

	if servers == "" || seed == "" {
		t.Skip("NATS_SERVERS or NATS_CLIENT_PRIVATE_KEY not set")
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	client, err := NewClient(servers, seed, prefix, logger)
	if err != nil {
		t.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer client.Close()

	cat := catalog.Default()
	sel := quote.NewSelection(cat)
	if err := client.PublishQuote(NewQuoteComputedPayload(cat, sel, quote.MustCompute(cat, sel))); err != nil {
		t.Fatalf("Failed to publish quote: %v", err)
	}
}

func TestNewClient_InvalidNKeySeed(t *testing.T) {
	_, err := NewClient("nats://localhost:4222", "invalid-seed", "", hclog.NewNullLogger())
	if err == nil {
		t.Fatal("Expected error for invalid NKey seed, got nil")
	}
}

func TestNewClient_EmptyNKeySeed(t *testing.T) {
	_, err := NewClient("nats://localhost:4222", "", "", hclog.NewNullLogger())
	if err == nil {
		t.Fatal("Expected error for empty NKey seed, got nil")
	}
}

func TestNkeyOption_ValidSeed(t *testing.T) {
	kp, err := nkeys.CreateUser()
	if err != nil {
		t.Fatalf("Failed to create user key: %v", err)
	}
	seed, err := kp.Seed()
	if err != nil {
		t.Fatalf("Failed to get seed: %v", err)
	}

	opt, err := nkeyOption(string(seed))
	if err != nil {
		t.Fatalf("Expected valid seed to be accepted, got %v", err)
	}
	if opt == nil {
		t.Fatal("Expected a connection option")
	}
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		prefix   string
		expected string
	}{
		{"", "quote.computed"},
		{"sales", "sales.quote.computed"},
	}

	for _, tt := range tests {
		if got := withPrefix(tt.prefix, baseSubjectQuoteComputed); got != tt.expected {
			t.Errorf("withPrefix(%q) = %q, want %q", tt.prefix, got, tt.expected)
		}
	}
}

func TestNewQuoteComputedPayload(t *testing.T) {
	cat := catalog.Default()
	sel := quote.NewSelection(cat).
		SelectPlan("p1.0").
		ToggleService("nf").
		SetCrmOption("no_whats").
		SetQuantity("user", 2)
	q := quote.MustCompute(cat, sel)

	payload := NewQuoteComputedPayload(cat, sel, q)

	if payload.QuoteID == "" {
		t.Error("Expected a quote id")
	}
	if payload.PlanID != "p1.0" || payload.CrmID != "no_whats" {
		t.Errorf("Unexpected selection fields: %+v", payload)
	}
	if len(payload.Services) != 1 || payload.Services[0] != "nf" {
		t.Errorf("Unexpected services: %v", payload.Services)
	}
	if len(payload.Quantities) != 1 || payload.Quantities["user"] != 2 {
		t.Errorf("Expected only positive quantities, got %v", payload.Quantities)
	}
	if len(payload.Terms) != 3 || payload.Terms[2].Months != 12 {
		t.Fatalf("Unexpected terms: %+v", payload.Terms)
	}
	if !payload.Terms[0].Total.Equal(q.OneMonth.Total) {
		t.Errorf("Expected 1 month total %s, got %s", q.OneMonth.Total, payload.Terms[0].Total)
	}

	data, err := marshalPayload(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	// Amounts travel as decimal strings
	if _, ok := decoded["monthlyRecurring"].(string); !ok {
		t.Errorf("Expected monthlyRecurring to be a string, got %T", decoded["monthlyRecurring"])
	}
}
