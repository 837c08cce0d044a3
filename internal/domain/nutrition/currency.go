package nutrition

import (
	"fmt"
	"sort"
)

// Base currency codes
const (
	CurrencyToman = "Toman"
	CurrencyIRR   = "IRR"
)

// CurrencyTable maps a currency code to its factor relative to the catalog price currency
type CurrencyTable struct {
	factors map[string]float64
}

// NewCurrencyTable validates and copies the factors
func NewCurrencyTable(factors map[string]float64) (CurrencyTable, error) {
	if len(factors) == 0 {
		return CurrencyTable{}, ErrNoCurrencies
	}
	table := CurrencyTable{factors: make(map[string]float64, len(factors))}
	for code, factor := range factors {
		if code == "" || factor <= 0 {
			return CurrencyTable{}, fmt.Errorf("%w: %q=%v", ErrInvalidCurrencyFactor, code, factor)
		}
		table.factors[code] = factor
	}
	return table, nil
}

// DefaultCurrencies prices in Toman, with IRR as the minor unit
func DefaultCurrencies() CurrencyTable {
	return CurrencyTable{factors: map[string]float64{CurrencyToman: 1, CurrencyIRR: 10}}
}

// Adjust converts an amount in the catalog currency into currency
func (t CurrencyTable) Adjust(amount float64, currency string) (float64, error) {
	factor, ok := t.factors[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
	}
	return amount * factor, nil
}

// Supports reports whether currency is known
func (t CurrencyTable) Supports(currency string) bool {
	_, ok := t.factors[currency]
	return ok
}

// Codes returns the known currency codes sorted
func (t CurrencyTable) Codes() []string {
	codes := make([]string, 0, len(t.factors))
	for code := range t.factors {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
