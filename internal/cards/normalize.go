package cards

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RawScan carries the fields handed over by the card identification step.
// The JSON tags match the detected-card payload that scanners emit.
type RawScan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	SetName  string   `json:"set_name"`
	ImageURL string   `json:"image_url"`
	HP       string   `json:"hp"`
	Types    []string `json:"types"`
	Subtypes []string `json:"subtypes"`
	Rarity   string   `json:"rarity"`
}

var titleCaser = cases.Title(language.English)

// Normalize maps a raw scan into a fully populated Record using per-field
// defaults. It is pure and deterministic: the same input always yields the
// same Record.
func Normalize(raw RawScan) Record {
	rec := Record{
		ExternalID: strings.TrimSpace(raw.ID),
		Name:       strings.TrimSpace(raw.Name),
		SetName:    strings.TrimSpace(raw.SetName),
		ImageURL:   strings.TrimSpace(raw.ImageURL),
		HP:         parseHP(raw.HP),
		Stage:      firstOrDefault(raw.Subtypes, DefaultStage),
		Typing:     firstOrDefault(raw.Types, DefaultTyping),
		Rarity:     DefaultRarity,
	}
	if rarity := canonicalWord(raw.Rarity); rarity != "" {
		rec.Rarity = rarity
	}
	return rec
}

// parseHP tolerates absent or malformed hit point text. Missing values
// default to "0" before parsing; anything unparseable or negative degrades
// to zero rather than failing.
func parseHP(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "0"
	}
	hp, err := strconv.Atoi(trimmed)
	if err != nil || hp < 0 {
		return 0
	}
	return hp
}

func firstOrDefault(values []string, fallback string) string {
	for _, value := range values {
		if canonical := canonicalWord(value); canonical != "" {
			return canonical
		}
	}
	return fallback
}

// canonicalWord trims and title-cases scanner-supplied words so "fire" and
// "FIRE" both store as "Fire".
func canonicalWord(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(trimmed))
}
