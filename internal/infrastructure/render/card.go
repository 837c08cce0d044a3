package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"unicode/utf8"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

const (
	cardWidth      = 480
	cardPercentCol = 410
	cardValueCol   = 200
	// glyphs per line at 7px advance inside the padding
	cardWrapWidth = (cardWidth - 2*labelPadding) / 7
)

// cardRow is one line of a recipe card. A rule row draws a separator.
type cardRow struct {
	left  string
	value string
	right string
	rule  bool
}

// cardRows lays out the recipe fields, ingredients, nutrition and instructions
func cardRows(r *recipe.Recipe, result nutrition.Result, reference nutrition.Reference) []cardRow {
	rows := []cardRow{
		{left: r.Name()},
		{left: fmt.Sprintf("Prep time: %d min", r.PrepTime()), value: fmt.Sprintf("Servings: %d", r.Servings())},
		{left: "Dietary: " + string(r.Dietary()), value: "Complexity: " + string(r.Complexity())},
		{rule: true},
		{left: "Ingredient", value: "Quantity"},
	}
	for _, it := range r.Ingredients() {
		rows = append(rows, cardRow{left: it.Ingredient, value: formatAmount(it.Quantity, "")})
	}

	rows = append(rows, cardRow{rule: true}, cardRow{left: "Nutrient", value: "Amount", right: "% DV"})
	for _, l := range breakdown(result, reference) {
		row := cardRow{left: l.Key, value: formatAmount(l.Value, l.Unit)}
		if l.Percent != nil {
			row.right = formatAmount(*l.Percent, "%")
		}
		rows = append(rows, row)
	}
	for _, name := range result.Missing {
		rows = append(rows, cardRow{left: "Not in catalog", value: name})
	}

	if instructions := strings.TrimSpace(r.Instructions()); instructions != "" {
		rows = append(rows, cardRow{rule: true}, cardRow{left: "Instructions"})
		for _, l := range wrap(instructions, cardWrapWidth) {
			rows = append(rows, cardRow{left: l})
		}
	}
	return rows
}

// wrap breaks text into lines of at most width runes, keeping paragraph breaks.
// A word longer than width gets a line of its own.
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(w) > width {
				lines = append(lines, current)
				current = w
				continue
			}
			current += " " + w
		}
		lines = append(lines, current)
	}
	return lines
}

func cardHeight(rows []cardRow) int {
	return labelPadding*2 + lineHeight*(len(rows)+1)
}

// card draws the recipe sheet as a PNG image
func (s *SheetRenderer) card(r *recipe.Recipe, result nutrition.Result, reference nutrition.Reference) ([]byte, error) {
	rows := cardRows(r, result, reference)

	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight(rows)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	drawBorder(img, color.Black)

	d := &font.Drawer{Dst: img, Src: image.Black, Face: s.face}
	y := labelPadding + lineHeight
	for _, row := range rows {
		if row.rule {
			rule(img, y-lineHeight/2)
			y += lineHeight
			continue
		}
		drawText(d, labelPadding, y, row.left)
		if row.value != "" {
			drawText(d, cardValueCol, y, row.value)
		}
		if row.right != "" {
			drawText(d, cardPercentCol, y, row.right)
		}
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode recipe card: %w", err)
	}

	s.logger.Debug("Recipe card drawn", zap.String("recipe", r.Name()), zap.Int("rows", len(rows)))
	return buf.Bytes(), nil
}
