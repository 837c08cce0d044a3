// Package render turns nutrition breakdowns and recipes into downloadable documents.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
)

// Media types of the rendered documents
const (
	ContentTypePNG  = "image/png"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// line is one printable row of a breakdown
type line struct {
	Key     string
	Value   float64
	Unit    string
	Percent *float64
}

// breakdown lists the result entries in reference order with Cost last
func breakdown(result nutrition.Result, reference nutrition.Reference) []line {
	var lines []line
	for _, key := range reference.Keys() {
		entry, ok := result.Nutrients[key]
		if !ok {
			continue
		}
		lines = append(lines, toLine(key, entry))
	}
	if entry, ok := result.Nutrients[nutrition.Cost]; ok {
		lines = append(lines, toLine(nutrition.Cost, entry))
	}
	return lines
}

func toLine(key string, e nutrition.Entry) line {
	l := line{Key: key, Value: e.Value, Percent: e.PercentDailyValue}
	if e.Unit != nil {
		l.Unit = *e.Unit
	}
	return l
}

func formatAmount(v float64, unit string) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// slug makes a filename stem from a title
func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "nutrition"
	}
	return s
}
