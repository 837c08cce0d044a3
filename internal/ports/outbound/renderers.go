package outbound

import (
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/recipe"
)

// Document is a rendered payload with its media type
type Document struct {
	ContentType string
	Filename    string
	Body        []byte
}

// LabelRenderer draws a nutrition facts label
type LabelRenderer interface {
	RenderLabel(title string, result nutrition.Result, reference nutrition.Reference) (*Document, error)
}

// SheetFormat selects the layout of a recipe sheet
type SheetFormat string

// Recipe sheet formats
const (
	SheetPNG  SheetFormat = "png"
	SheetXLSX SheetFormat = "xlsx"
)

// SheetRenderer lays out a printable recipe sheet
type SheetRenderer interface {
	RenderSheet(format SheetFormat, r *recipe.Recipe, result nutrition.Result, reference nutrition.Reference) (*Document, error)
}
