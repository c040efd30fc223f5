package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Game.ManaRegen != 10 {
		t.Errorf("Expected default mana regen 10, got %d", cfg.Game.ManaRegen)
	}
	if cfg.AI.Difficulty != "medium" {
		t.Errorf("Expected default difficulty medium, got %s", cfg.AI.Difficulty)
	}
	if cfg.AI.SearchBudgetMs != 5000 {
		t.Errorf("Expected default search budget 5000ms, got %d", cfg.AI.SearchBudgetMs)
	}
}
