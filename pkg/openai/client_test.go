package openai

import (
	"testing"
	"time"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/config"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(config.OpenAIConfig{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestNewAppliesModelDefaults(t *testing.T) {
	client, err := New(config.OpenAIConfig{
		APIKey:        "sk-test",
		FastModel:     "gpt-4o-mini",
		AdvancedModel: "gpt-4o",
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if client.FastModel() != "gpt-4o-mini" {
		t.Fatalf("unexpected fast model %q", client.FastModel())
	}
	if client.AdvancedModel() != "gpt-4o" {
		t.Fatalf("unexpected advanced model %q", client.AdvancedModel())
	}
	if client.timeout != 25*time.Second {
		t.Fatalf("zero timeout should default to 25s, got %v", client.timeout)
	}
}
