package cards

// Per-field defaults applied when neither the scan nor the remote lookup
// supplies a value.
const (
	DefaultStage  = "Basic"
	DefaultTyping = "Unknown"
	DefaultRarity = "Unknown"
)

// Record represents one physical card's attributes as they flow through the
// ingestion pipeline: built by Normalize, enriched by the resolver, persisted
// by the catalog store.
type Record struct {
	ExternalID string
	Name       string
	SetName    string
	HP         int
	Stage      string
	Typing     string
	Rarity     string
	ImageURL   string
	Price      float64
}

// HPIsDefault reports whether the hit points field still carries its default.
func (r *Record) HPIsDefault() bool { return r.HP == 0 }

// StageIsDefault reports whether the evolution stage still carries its default.
func (r *Record) StageIsDefault() bool { return r.Stage == DefaultStage }

// TypingIsDefault reports whether the typing field still carries its default.
func (r *Record) TypingIsDefault() bool { return r.Typing == DefaultTyping }

// RarityIsDefault reports whether the rarity field still carries its default.
func (r *Record) RarityIsDefault() bool { return r.Rarity == DefaultRarity }
