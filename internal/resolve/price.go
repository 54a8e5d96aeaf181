package resolve

import "cardkeep/internal/tcgapi"

// priceTiers is the canonical price-extraction policy: tiers are consulted in
// this order and the first one carrying a market value wins. Every call site
// shares this one list.
var priceTiers = []string{"holofoil", "normal", "reverseHolofoil"}

// PriceQuote is the ephemeral result of a price lookup. Found distinguishes
// "no tier carried a market value" from a legitimate $0.00 quote.
type PriceQuote struct {
	Found bool
	Value float64
}

// extractPrice walks the tier preference order over a card's pricing block.
func extractPrice(card *tcgapi.Card) PriceQuote {
	if card == nil || card.TCGPlayer.Prices == nil {
		return PriceQuote{}
	}
	for _, tier := range priceTiers {
		prices, ok := card.TCGPlayer.Prices[tier]
		if !ok || prices.Market == nil {
			continue
		}
		return PriceQuote{Found: true, Value: *prices.Market}
	}
	return PriceQuote{}
}
