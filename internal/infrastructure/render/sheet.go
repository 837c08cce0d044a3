package render

import (
	"fmt"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// SheetName is the worksheet holding the recipe
const SheetName = "Recipe"

// SheetRenderer lays out recipes as PNG cards or XLSX workbooks
type SheetRenderer struct {
	face   font.Face
	logger *zap.Logger
}

// NewSheetRenderer creates a recipe sheet renderer
func NewSheetRenderer(logger *zap.Logger) outbound.SheetRenderer {
	return &SheetRenderer{
		face:   basicfont.Face7x13,
		logger: logger.Named("sheet-renderer"),
	}
}

// RenderSheet lays out the recipe fields, its ingredient table and its
// nutrition table in the requested format
func (s *SheetRenderer) RenderSheet(format outbound.SheetFormat, r *recipe.Recipe, result nutrition.Result, reference nutrition.Reference) (*outbound.Document, error) {
	var (
		doc = &outbound.Document{}
		err error
	)
	switch format {
	case outbound.SheetPNG:
		doc.ContentType, doc.Filename = ContentTypePNG, slug(r.Name())+".png"
		doc.Body, err = s.card(r, result, reference)
	case outbound.SheetXLSX:
		doc.ContentType, doc.Filename = ContentTypeXLSX, slug(r.Name())+".xlsx"
		doc.Body, err = s.workbook(r, result, reference)
	default:
		return nil, fmt.Errorf("unsupported sheet format %q", format)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Recipe sheet rendered",
		zap.String("recipe", r.Name()),
		zap.String("format", string(format)),
		zap.Int("bytes", len(doc.Body)))
	return doc, nil
}

// workbook writes the sheet as a single-worksheet XLSX file
func (s *SheetRenderer) workbook(r *recipe.Recipe, result nutrition.Result, reference nutrition.Reference) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	rows := [][]interface{}{
		{"Recipe", r.Name()},
		{"Prep time (min)", r.PrepTime()},
		{"Servings", r.Servings()},
		{"Dietary", string(r.Dietary())},
		{"Complexity", string(r.Complexity())},
		{"Instructions", r.Instructions()},
		{},
		{"Ingredient", "Quantity"},
	}
	headers := []int{1, len(rows)}

	for _, it := range r.Ingredients() {
		rows = append(rows, []interface{}{it.Ingredient, it.Quantity})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Nutrient", "Value", "Unit", "% DV"})
	headers = append(headers, len(rows))
	for _, l := range breakdown(result, reference) {
		row := []interface{}{l.Key, l.Value, l.Unit}
		if l.Percent != nil {
			row = append(row, *l.Percent)
		}
		rows = append(rows, row)
	}

	if len(result.Missing) > 0 {
		rows = append(rows, []interface{}{})
		for _, name := range result.Missing {
			rows = append(rows, []interface{}{"Not in catalog", name})
		}
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for _, h := range headers {
		start, _ := excelize.CoordinatesToCellName(1, h)
		end, _ := excelize.CoordinatesToCellName(4, h)
		if err := f.SetCellStyle(SheetName, start, end, bold); err != nil {
			return nil, fmt.Errorf("style row %d: %w", h, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
