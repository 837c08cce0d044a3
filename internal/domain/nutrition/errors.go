package nutrition

import "errors"

var (
	ErrEmptySelection        = errors.New("selection must contain at least one ingredient with a positive quantity")
	ErrInvalidScaleFactor    = errors.New("scale factor must be greater than 0")
	ErrUnknownCurrency       = errors.New("unknown currency")
	ErrInvalidServings       = errors.New("servings must be greater than 0")
	ErrInvalidMarkup         = errors.New("markup must be greater than 0")
	ErrNoCurrencies          = errors.New("currency table is empty")
	ErrInvalidCurrencyFactor = errors.New("invalid currency factor")
)
