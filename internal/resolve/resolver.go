package resolve

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"cardkeep/internal/cards"
	"cardkeep/internal/logging"
	"cardkeep/internal/tcgapi"
)

const defaultLookupTimeout = 10 * time.Second

// Resolver enriches scanned cards via the remote card catalog API.
type Resolver struct {
	fetcher tcgapi.Fetcher
	logger  *slog.Logger
	timeout time.Duration
}

// NewResolver builds a Resolver around the supplied fetcher. A nil logger is
// replaced with a no-op logger; a non-positive timeout falls back to the
// package default.
func NewResolver(fetcher tcgapi.Fetcher, logger *slog.Logger, timeout time.Duration) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &Resolver{
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "resolve"),
		timeout: timeout,
	}
}

// Resolve looks the card up remotely, fills attribute fields that still carry
// their defaults, and returns the market price quote. It fails softly: any
// lookup failure leaves the record as-is and reports an unfound quote.
func (r *Resolver) Resolve(ctx context.Context, rec *cards.Record) PriceQuote {
	if r == nil || r.fetcher == nil || rec == nil {
		return PriceQuote{}
	}

	card := r.lookup(ctx, rec)
	if card == nil {
		return PriceQuote{}
	}

	applyAttributes(rec, card)
	return extractPrice(card)
}

// lookup runs the tier-one exact-id query and, when that yields nothing, the
// tier-two name+set search. A failure in one tier discards that tier's
// contribution entirely and falls through.
func (r *Resolver) lookup(ctx context.Context, rec *cards.Record) *tcgapi.Card {
	log := logging.WithContext(ctx, r.logger)

	if rec.ExternalID != "" {
		card, err := r.getCard(ctx, rec.ExternalID)
		if err != nil {
			log.Warn("exact-id lookup failed, falling back to name+set search",
				logging.String("card_id", rec.ExternalID),
				logging.Error(err))
		} else if card != nil {
			return card
		}
	}

	if rec.Name == "" {
		return nil
	}

	resp, err := r.searchCards(ctx, rec.Name, rec.SetName)
	if err != nil {
		log.Warn("name+set search failed, continuing with defaults",
			logging.String("name", rec.Name),
			logging.String("set_name", rec.SetName),
			logging.Error(err))
		return nil
	}
	if resp == nil || len(resp.Data) == 0 {
		log.Debug("name+set search returned no results",
			logging.String("name", rec.Name),
			logging.String("set_name", rec.SetName))
		return nil
	}
	return &resp.Data[0]
}

func (r *Resolver) getCard(ctx context.Context, id string) (*tcgapi.Card, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.fetcher.GetCard(callCtx, id)
}

func (r *Resolver) searchCards(ctx context.Context, name, setName string) (*tcgapi.SearchResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.fetcher.SearchCards(callCtx, name, setName)
}

// applyAttributes copies remote attributes into fields the scan left at their
// defaults. Non-default fields are never overwritten.
func applyAttributes(rec *cards.Record, card *tcgapi.Card) {
	if rec.ExternalID == "" && card.ID != "" {
		rec.ExternalID = card.ID
	}
	if rec.Name == "" {
		rec.Name = strings.TrimSpace(card.Name)
	}
	if rec.SetName == "" {
		rec.SetName = strings.TrimSpace(card.Set.Name)
	}
	if rec.HPIsDefault() {
		if hp, err := strconv.Atoi(strings.TrimSpace(card.HP)); err == nil && hp > 0 {
			rec.HP = hp
		}
	}
	if rec.TypingIsDefault() && len(card.Types) > 0 {
		if typing := strings.TrimSpace(card.Types[0]); typing != "" {
			rec.Typing = typing
		}
	}
	if rec.StageIsDefault() && len(card.Subtypes) > 0 {
		if stage := strings.TrimSpace(card.Subtypes[0]); stage != "" {
			rec.Stage = stage
		}
	}
	if rec.RarityIsDefault() {
		if rarity := strings.TrimSpace(card.Rarity); rarity != "" {
			rec.Rarity = rarity
		}
	}
	if rec.ImageURL == "" {
		if card.Images.Large != "" {
			rec.ImageURL = card.Images.Large
		} else {
			rec.ImageURL = card.Images.Small
		}
	}
}
