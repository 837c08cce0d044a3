package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	labelWidth   = 340
	labelPadding = 12
	lineHeight   = 18
	percentCol   = 270
)

// LabelRenderer draws nutrition facts labels as PNG images
type LabelRenderer struct {
	face   font.Face
	logger *zap.Logger
}

// NewLabelRenderer creates a PNG label renderer using the built-in bitmap font
func NewLabelRenderer(logger *zap.Logger) outbound.LabelRenderer {
	return &LabelRenderer{
		face:   basicfont.Face7x13,
		logger: logger.Named("label-renderer"),
	}
}

// RenderLabel draws title, one row per nutrient with its percent daily value, and the cost
func (r *LabelRenderer) RenderLabel(title string, result nutrition.Result, reference nutrition.Reference) (*outbound.Document, error) {
	lines := breakdown(result, reference)
	height := labelPadding*2 + lineHeight*(len(lines)+3)

	img := image.NewRGBA(image.Rect(0, 0, labelWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	drawBorder(img, color.Black)

	d := &font.Drawer{Dst: img, Src: image.Black, Face: r.face}
	y := labelPadding + lineHeight

	drawText(d, labelPadding, y, title)
	y += lineHeight
	drawText(d, percentCol, y, "% DV")
	rule(img, y+4)
	y += lineHeight

	for _, l := range lines {
		drawText(d, labelPadding, y, fmt.Sprintf("%-15s %s", l.Key, formatAmount(l.Value, l.Unit)))
		if l.Percent != nil {
			drawText(d, percentCol, y, formatAmount(*l.Percent, "%"))
		}
		y += lineHeight
	}

	if len(result.Missing) > 0 {
		drawText(d, labelPadding, y, fmt.Sprintf("Skipped: %d unknown", len(result.Missing)))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode label: %w", err)
	}

	r.logger.Debug("Label rendered", zap.String("title", title), zap.Int("bytes", buf.Len()))
	return &outbound.Document{
		ContentType: ContentTypePNG,
		Filename:    slug(title) + "-label.png",
		Body:        buf.Bytes(),
	}, nil
}

func drawText(d *font.Drawer, x, y int, s string) {
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

// rule draws a horizontal line across the image inside the padding
func rule(img *image.RGBA, y int) {
	for x := labelPadding; x < img.Bounds().Dx()-labelPadding; x++ {
		img.Set(x, y, color.Black)
	}
}

func drawBorder(img *image.RGBA, c color.Color) {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		img.Set(x, b.Min.Y, c)
		img.Set(x, b.Max.Y-1, c)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		img.Set(b.Min.X, y, c)
		img.Set(b.Max.X-1, y, c)
	}
}
