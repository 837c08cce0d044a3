package nutrition

// DefaultMarkup is the sale price multiplier applied to per-serving cost
const DefaultMarkup = 1.5

// Pricing holds the process-wide cost display settings
type Pricing struct {
	DefaultCurrency string
	Markup          float64
}

// DefaultPricing prices in Toman with the default markup
func DefaultPricing() Pricing {
	return Pricing{DefaultCurrency: CurrencyToman, Markup: DefaultMarkup}
}

// Currency returns requested, or the default currency when requested is empty
func (p Pricing) Currency(requested string) string {
	if requested == "" {
		return p.DefaultCurrency
	}
	return requested
}
