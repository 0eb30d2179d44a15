package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/wonny/ledger/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()

	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on disabled client error = %v", err)
	}
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "ledger")
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []string{"AAPL"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var result []string
	found, err := cache.Get(ctx, "key", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}

	if err := cache.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestCache_FullKey(t *testing.T) {
	cache := NewCache(disabledClient(t), "ledger")
	if got := cache.fullKey("document:abc"); got != "ledger:cache:document:abc" {
		t.Errorf("fullKey() = %q", got)
	}
}

func TestDocumentKey(t *testing.T) {
	a := DocumentKey("https://example.com/data.json")
	b := DocumentKey("https://example.com/other.json")

	if !strings.HasPrefix(a, "document:") {
		t.Errorf("Expected document: prefix, got %q", a)
	}
	if a == b {
		t.Error("Expected different keys for different sources")
	}
	if a != DocumentKey("https://example.com/data.json") {
		t.Error("Expected stable key for the same source")
	}
	if len(a) != len("document:")+16 {
		t.Errorf("Unexpected key length %d", len(a))
	}
}
