package cards_test

import (
	"reflect"
	"testing"

	"cardkeep/internal/cards"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	rec := cards.Normalize(cards.RawScan{Name: "Pikachu", SetName: "Base Set"})

	if rec.ExternalID != "" {
		t.Fatalf("expected empty external id, got %q", rec.ExternalID)
	}
	if rec.HP != 0 {
		t.Fatalf("expected default hp 0, got %d", rec.HP)
	}
	if rec.Stage != cards.DefaultStage {
		t.Fatalf("expected default stage, got %q", rec.Stage)
	}
	if rec.Typing != cards.DefaultTyping {
		t.Fatalf("expected default typing, got %q", rec.Typing)
	}
	if rec.Rarity != cards.DefaultRarity {
		t.Fatalf("expected default rarity, got %q", rec.Rarity)
	}
	if rec.Price != 0 {
		t.Fatalf("expected zero price, got %f", rec.Price)
	}
}

func TestNormalizeParsesFields(t *testing.T) {
	rec := cards.Normalize(cards.RawScan{
		ID:       " base1-58 ",
		Name:     "Pikachu",
		SetName:  "Base Set",
		HP:       "40",
		Types:    []string{"lightning"},
		Subtypes: []string{"basic"},
		Rarity:   "COMMON",
		ImageURL: "https://img.example/base1-58.png",
	})

	if rec.ExternalID != "base1-58" {
		t.Fatalf("unexpected external id: %q", rec.ExternalID)
	}
	if rec.HP != 40 {
		t.Fatalf("unexpected hp: %d", rec.HP)
	}
	if rec.Typing != "Lightning" {
		t.Fatalf("unexpected typing: %q", rec.Typing)
	}
	if rec.Stage != "Basic" {
		t.Fatalf("unexpected stage: %q", rec.Stage)
	}
	if rec.Rarity != "Common" {
		t.Fatalf("unexpected rarity: %q", rec.Rarity)
	}
}

func TestNormalizeToleratesBadHP(t *testing.T) {
	for _, hp := range []string{"", "  ", "abc", "-20"} {
		rec := cards.Normalize(cards.RawScan{Name: "Pikachu", HP: hp})
		if rec.HP != 0 {
			t.Fatalf("hp %q: expected 0, got %d", hp, rec.HP)
		}
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raw := cards.RawScan{
		ID:       "base1-4",
		Name:     "Charizard",
		SetName:  "Base Set",
		HP:       "120",
		Types:    []string{"Fire"},
		Subtypes: []string{"Stage 2"},
		Rarity:   "Rare Holo",
	}
	first := cards.Normalize(raw)
	second := cards.Normalize(raw)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalize not deterministic: %#v vs %#v", first, second)
	}
}

func TestNormalizeSkipsBlankTypeEntries(t *testing.T) {
	rec := cards.Normalize(cards.RawScan{Name: "Eevee", Types: []string{" ", "colorless"}})
	if rec.Typing != "Colorless" {
		t.Fatalf("expected blank entries skipped, got %q", rec.Typing)
	}
}
