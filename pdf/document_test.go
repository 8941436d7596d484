package pdf

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yansassi/hecho-adm-sub001/models"
)

func TestTrEncodesWindows1252(t *testing.T) {
	d := newDocument()

	assert.Equal(t, "Pre\xe7o", d.tr("Preço"))
	assert.Equal(t, "Promo\xc7\xc3O", d.tr("PromoÇÃO"))
	assert.Equal(t, "caf\xe9 ?", d.tr("café 🐶"))
}

func TestUpperCaseKeepsAccents(t *testing.T) {
	d := newDocument()
	assert.Equal(t, "CAMISETA ALGODÃO", d.upperCase("camiseta algodão"))
}

func TestWrap(t *testing.T) {
	d := newDocument()
	d.font("", 10)

	t.Run("fits on one line", func(t *testing.T) {
		assert.Equal(t, []string{"Ração premium"}, d.wrap("  Ração   premium ", 100, 3))
	})

	t.Run("breaks on words within width", func(t *testing.T) {
		lines := d.wrap("coleira ajustável de nylon com fivela reforçada", 30, 10)
		require.Greater(t, len(lines), 1)
		for _, line := range lines {
			assert.LessOrEqual(t, d.width(line), 30.0)
			assert.False(t, strings.HasSuffix(line, ellipsis))
		}
		assert.Equal(t, "coleira ajustável de nylon com fivela reforçada", strings.Join(lines, " "))
	})

	t.Run("ellipsizes past max lines", func(t *testing.T) {
		lines := d.wrap("um dois tres quatro cinco seis sete oito nove dez", 20, 2)
		require.Len(t, lines, 2)
		assert.True(t, strings.HasSuffix(lines[1], ellipsis))
		assert.LessOrEqual(t, d.width(lines[1]), 20.0)
	})

	t.Run("cuts words wider than the line", func(t *testing.T) {
		lines := d.wrap(strings.Repeat("x", 80), 20, 10)
		require.Greater(t, len(lines), 1)
		for _, line := range lines {
			assert.LessOrEqual(t, d.width(line), 20.0)
		}
		assert.Equal(t, strings.Repeat("x", 80), strings.Join(lines, ""))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, d.wrap("   ", 20, 2))
		assert.Nil(t, d.wrap("texto", 20, 0))
	})
}

func TestLayoutTags(t *testing.T) {
	assert.Nil(t, layoutTags(0, 100, 10, 40, 22, 4.5, 1.5))

	one := layoutTags(1, 100, 10, 40, 22, 4.5, 1.5)
	require.Len(t, one, 1)
	assert.Equal(t, rect{X: 78, Y: 10, W: 22, H: 4.5}, one[0])

	narrow := layoutTags(1, 100, 10, 15, 22, 4.5, 1.5)
	assert.Equal(t, 15.0, narrow[0].W)

	two := layoutTags(2, 100, 10, 40, 22, 4.5, 1.5)
	require.Len(t, two, 2)
	assert.InDelta(t, 19.25, two[0].W, 1e-9)
	assert.InDelta(t, 100.0, two[1].X+two[1].W, 1e-9)
	assert.InDelta(t, 1.5, two[1].X-(two[0].X+two[0].W), 1e-9)

	assert.Len(t, layoutTags(3, 100, 10, 40, 22, 4.5, 1.5), 2)
}

func TestFitRect(t *testing.T) {
	box := rect{X: 10, Y: 10, W: 40, H: 40}

	assertRect(t, rect{X: 10, Y: 20, W: 40, H: 20}, fitRect(200, 100, box))
	assertRect(t, rect{X: 25, Y: 10, W: 10, H: 40}, fitRect(100, 400, box))

	assert.Equal(t, box, fitRect(0, 0, box))
}

func assertRect(t *testing.T, want, got rect) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, want.W, got.W, 1e-9)
	assert.InDelta(t, want.H, got.H, 1e-9)
}

func TestRegisterImageKeepsEarlierCanvasError(t *testing.T) {
	d := newDocument()
	earlier := errors.New("earlier drawing failure")
	d.pdf.SetError(earlier)

	_, err := d.registerImage("photo", models.ImagePayload{Data: []byte("not an image"), Type: "JPG"})
	require.Error(t, err)
	assert.ErrorIs(t, d.pdf.Error(), earlier)
}

func TestRegisterImageClearsOwnFailure(t *testing.T) {
	d := newDocument()

	_, err := d.registerImage("photo", models.ImagePayload{Data: []byte("not an image"), Type: "JPG"})
	require.Error(t, err)
	assert.True(t, d.pdf.Ok())
	assert.NotContains(t, d.images, "photo")
}
