package importer

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/nutrino/kitchen/internal/domain/ingredient"
	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"go.uber.org/zap"
)

type field int

const (
	fieldName field = iota
	fieldLocalizedName
	fieldDietary
	fieldCategory
	fieldPurchaseCost
	fieldPurchaseAmount
)

// headerAliases maps normalized header text to catalog fields
var headerAliases = map[string]field{
	"name":           fieldName,
	"ingredient":     fieldName,
	"ingredientname": fieldName,
	"localizedname":  fieldLocalizedName,
	"persianname":    fieldLocalizedName,
	"dietary":        fieldDietary,
	"category":       fieldCategory,
	"purchasecost":   fieldPurchaseCost,
	"purchaseamount": fieldPurchaseAmount,
	"purchaseamt":    fieldPurchaseAmount,
}

// nutrientAliases adds singular spellings of schema columns
var nutrientAliases = map[string]string{
	"protein": nutrition.Proteins,
	"fat":     nutrition.Fats,
	"carbs":   nutrition.Carbohydrates,
}

// Skipped describes a row that was not imported
type Skipped struct {
	Line   int
	Name   string
	Reason string
}

// Report summarizes an import run
type Report struct {
	Rows     int
	Imported int
	Skipped  []Skipped
}

// Importer writes spreadsheet rows into the catalog, replacing records by name
type Importer struct {
	repo   outbound.IngredientRepository
	logger *zap.Logger
}

// New creates an importer over the catalog repository
func New(repo outbound.IngredientRepository, logger *zap.Logger) *Importer {
	return &Importer{repo: repo, logger: logger.Named("importer")}
}

// ImportFile reads a .csv or .xlsx file and imports it
func (im *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var table *Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		table, err = ReadCSV(f)
	case ".xlsx":
		table, err = ReadXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	return im.Import(ctx, table)
}

// Import cleans the table rows and upserts them. Rows with a blank name or a
// purchase amount <= 0 are skipped; a later row wins over an earlier one with
// the same name.
func (im *Importer) Import(ctx context.Context, table *Table) (*Report, error) {
	columns, nutrients := mapHeader(table.Header)
	if _, ok := columns[fieldName]; !ok {
		return nil, fmt.Errorf("no ingredient name column in header %v", table.Header)
	}

	report := &Report{}
	index := make(map[string]int)
	var records []*ingredient.Ingredient

	for i, row := range table.Rows {
		if blankRow(row) {
			continue
		}
		report.Rows++
		line := i + 2

		attrs := rowAttributes(row, columns, nutrients)
		if attrs.Name == "" {
			report.Skipped = append(report.Skipped, Skipped{Line: line, Reason: "blank name"})
			continue
		}
		if attrs.PurchaseAmount <= 0 {
			report.Skipped = append(report.Skipped, Skipped{Line: line, Name: attrs.Name, Reason: "purchase amount must be positive"})
			continue
		}

		record := ingredient.Restore(attrs, attrs.PurchaseCost/attrs.PurchaseAmount)
		if pos, seen := index[attrs.Name]; seen {
			records[pos] = record
			continue
		}
		index[attrs.Name] = len(records)
		records = append(records, record)
	}

	for _, s := range report.Skipped {
		im.logger.Warn("Skipping catalog row", zap.Int("line", s.Line), zap.String("name", s.Name), zap.String("reason", s.Reason))
	}

	if len(records) == 0 {
		return report, nil
	}

	n, err := im.repo.Upsert(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("upsert catalog: %w", err)
	}
	report.Imported = n

	im.logger.Info("Catalog imported",
		zap.Int("rows", report.Rows),
		zap.Int("imported", report.Imported),
		zap.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func mapHeader(header []string) (map[field]int, map[string]int) {
	columns := make(map[field]int)
	nutrients := make(map[string]int)

	schema := make(map[string]string)
	for _, key := range nutrition.Schema() {
		schema[normalize(key)] = key
	}
	for alias, key := range nutrientAliases {
		schema[alias] = key
	}

	for i, h := range header {
		norm := normalize(h)
		if f, ok := headerAliases[norm]; ok {
			if _, dup := columns[f]; !dup {
				columns[f] = i
			}
			continue
		}
		if key, ok := schema[norm]; ok {
			if _, dup := nutrients[key]; !dup {
				nutrients[key] = i
			}
		}
	}
	return columns, nutrients
}

func rowAttributes(row []string, columns map[field]int, nutrients map[string]int) ingredient.Attributes {
	text := func(f field) string {
		i, ok := columns[f]
		if !ok {
			return ""
		}
		return cell(row, i)
	}

	attrs := ingredient.Attributes{
		Name:           text(fieldName),
		LocalizedName:  text(fieldLocalizedName),
		Dietary:        dietary(text(fieldDietary)),
		Category:       category(text(fieldCategory)),
		PurchaseCost:   CleanNumber(text(fieldPurchaseCost)),
		PurchaseAmount: CleanNumber(text(fieldPurchaseAmount)),
		Nutrients:      make(nutrition.Profile, len(nutrients)),
	}
	for key, i := range nutrients {
		attrs.Nutrients[key] = CleanNumber(cell(row, i))
	}
	return attrs
}

// CleanNumber strips thousands separators and parses s. Blank, non-numeric
// or non-finite text reads as 0.
func CleanNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// dietary canonicalizes known tags; unknown tags are kept as written
func dietary(s string) ingredient.Dietary {
	if s == "" {
		return ingredient.DietaryOmnivore
	}
	if d, err := ingredient.ParseDietary(s); err == nil {
		return d
	}
	return ingredient.Dietary(s)
}

func category(s string) ingredient.Category {
	if s == "" {
		return ingredient.CategoryOther
	}
	if c, err := ingredient.ParseCategory(s); err == nil {
		return c
	}
	return ingredient.Category(s)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
