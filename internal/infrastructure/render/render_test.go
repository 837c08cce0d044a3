package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/nutrino/kitchen/internal/domain/nutrition"
	"github.com/nutrino/kitchen/internal/domain/recipe"
	"github.com/nutrino/kitchen/internal/ports/outbound"
	"github.com/nutrino/kitchen/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func sampleResult(t *testing.T) nutrition.Result {
	t.Helper()
	agg := nutrition.NewAggregator(nutrition.DefaultReference(), nutrition.DefaultCurrencies())
	res, err := agg.Aggregate(nutrition.Selection{
		Portions: []nutrition.Portion{
			{Ingredient: "Egg", Quantity: 200},
			{Ingredient: "Dragonfruit", Quantity: 50},
		},
		ScaleFactor: 1,
		Currency:    "Toman",
	}, nutrition.Snapshot{
		"Egg": {Nutrients: nutrition.Profile{nutrition.Calories: 155, nutrition.Proteins: 13}, PricePerUnit: 0.5},
	})
	require.NoError(t, err)
	return res
}

func TestBreakdownOrder(t *testing.T) {
	lines := breakdown(sampleResult(t), nutrition.DefaultReference())

	require.NotEmpty(t, lines)
	assert.Equal(t, nutrition.Calories, lines[0].Key)
	assert.Equal(t, 310.0, lines[0].Value)
	assert.Equal(t, "kcal", lines[0].Unit)
	require.NotNil(t, lines[0].Percent)
	assert.Equal(t, 15.5, *lines[0].Percent)

	last := lines[len(lines)-1]
	assert.Equal(t, nutrition.Cost, last.Key)
	assert.Equal(t, 100.0, last.Value)
	assert.Equal(t, "Toman", last.Unit)

	for _, l := range lines {
		assert.NotEqual(t, nutrition.AddedSugars, l.Key)
	}
}

func TestFormatAmountAndSlug(t *testing.T) {
	assert.Equal(t, "15.5 %", formatAmount(15.5, "%"))
	assert.Equal(t, "310 kcal", formatAmount(310, "kcal"))
	assert.Equal(t, "0.07", formatAmount(0.07, ""))

	assert.Equal(t, "lentil-soup", slug("Lentil Soup!"))
	assert.Equal(t, "آش-رشته", slug("آش رشته"))
	assert.Equal(t, "nutrition", slug("  ** "))
}

func TestRenderLabel(t *testing.T) {
	renderer := NewLabelRenderer(zap.NewNop())
	result := sampleResult(t)

	doc, err := renderer.RenderLabel("Egg Breakfast", result, nutrition.DefaultReference())
	require.NoError(t, err)

	assert.Equal(t, ContentTypePNG, doc.ContentType)
	assert.Equal(t, "egg-breakfast-label.png", doc.Filename)

	img, err := png.Decode(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	lines := breakdown(result, nutrition.DefaultReference())
	assert.Equal(t, labelWidth, img.Bounds().Dx())
	assert.Equal(t, labelPadding*2+lineHeight*(len(lines)+3), img.Bounds().Dy())
}

func breakfast() *recipe.Recipe {
	return testutils.NewRecipeBuilder().
		WithName("Egg Breakfast").
		WithItem("Egg", 200).
		WithItem("Dragonfruit", 50).
		WithPrepTime(12).
		WithServings(2).
		WithDietary("vegetarian").
		WithComplexity("easy").
		Build()
}

func TestRenderSheetCard(t *testing.T) {
	renderer := NewSheetRenderer(zap.NewNop())
	r := breakfast()
	result := sampleResult(t)

	doc, err := renderer.RenderSheet(outbound.SheetPNG, r, result, nutrition.DefaultReference())
	require.NoError(t, err)
	assert.Equal(t, ContentTypePNG, doc.ContentType)
	assert.Equal(t, "egg-breakfast.png", doc.Filename)

	img, err := png.Decode(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	rows := cardRows(r, result, nutrition.DefaultReference())
	assert.Equal(t, cardWidth, img.Bounds().Dx())
	assert.Equal(t, cardHeight(rows), img.Bounds().Dy())

	var left []string
	for _, row := range rows {
		left = append(left, row.left)
	}
	assert.Equal(t, "Egg Breakfast", rows[0].left)
	assert.Contains(t, left, "Egg")
	assert.Contains(t, left, "Not in catalog")
	assert.Contains(t, left, nutrition.Calories)
	assert.Contains(t, left, "Instructions")

	for _, row := range rows {
		if row.left == nutrition.Calories {
			assert.Equal(t, "310 kcal", row.value)
			assert.Equal(t, "15.5 %", row.right)
		}
	}
}

func TestRenderSheetRejectsUnknownFormat(t *testing.T) {
	_, err := NewSheetRenderer(zap.NewNop()).RenderSheet("pdf", breakfast(), sampleResult(t), nutrition.DefaultReference())

	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"crack the", "eggs into", "a pan"}, wrap("crack the eggs into a pan", 10))
	assert.Equal(t, []string{"whisk", "fry gently"}, wrap("whisk\n\nfry   gently", 20))
	assert.Equal(t, []string{"a", "supercalifragilistic", "b"}, wrap("a supercalifragilistic b", 5))
	assert.Empty(t, wrap("  \n ", 10))
}

func TestRenderSheetWorkbook(t *testing.T) {
	renderer := NewSheetRenderer(zap.NewNop())
	r := breakfast()

	doc, err := renderer.RenderSheet(outbound.SheetXLSX, r, sampleResult(t), nutrition.DefaultReference())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, doc.ContentType)
	assert.Equal(t, "egg-breakfast.xlsx", doc.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)

	find := func(label string) []string {
		for _, row := range rows {
			if len(row) > 0 && row[0] == label {
				return row
			}
		}
		return nil
	}

	assert.Equal(t, []string{"Recipe", "Egg Breakfast"}, find("Recipe"))
	assert.Equal(t, []string{"Prep time (min)", "12"}, find("Prep time (min)"))
	assert.Equal(t, []string{"Servings", "2"}, find("Servings"))
	assert.Equal(t, []string{"Egg", "200"}, find("Egg"))
	assert.Equal(t, []string{"Calories", "310", "kcal", "15.5"}, find("Calories"))
	assert.Equal(t, []string{"Cost", "100", "Toman"}, find("Cost"))
	assert.Equal(t, []string{"Not in catalog", "Dragonfruit"}, find("Not in catalog"))
}
