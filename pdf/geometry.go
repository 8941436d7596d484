package pdf

import "math"

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth     = 210.0
	pageHeight    = 297.0
	pageMargin    = 10.0
	contentWidth  = pageWidth - 2*pageMargin
	headerTall    = 20.0 // banner height with a category label
	headerShort   = 16.0 // banner height without a category label
	headerGap     = 6.0
	logoHeight    = 10.0
	footerHeight  = 10.0
	footerReserve = 4.0
	contentBottom = pageHeight - footerHeight - footerReserve
)

// Grid card geometry.
const (
	gridColumns     = 4
	gridGap         = 4.0
	columnWidth     = (contentWidth - (gridColumns-1)*gridGap) / gridColumns
	cardPadding     = 2.0
	cardImageSide   = columnWidth - 2*cardPadding
	cardNameHeight  = 7.5
	cardDescLine    = 3.0
	cardPackageLine = 4.0
	priceBoxHeight  = 7.0
	codeBarHeight   = 5.0
	tableRowHeight  = 4.5
	gridTagHeight   = 4.5
	gridTagGap      = 1.5
	gridTagMaxWidth = 22.0
)

// Single-page geometry.
const (
	singleImageSide   = 110.0
	singleTagHeight   = 8.0
	singleTagGap      = 2.0
	singleTagMaxWidth = 36.0
	singleTagArea     = 70.0
)

// singleCardHeight is the height of a one-column card
const singleCardHeight = cardPadding + cardImageSide + cardNameHeight + 2*cardDescLine +
	cardPackageLine + 1 + priceBoxHeight + codeBarHeight

// groupCardFixedHeight is the height of a double card without table rows
const groupCardFixedHeight = cardPadding + cardImageSide + 2 + tableRowHeight + 1 + codeBarHeight

// maxGroupTableRows keeps a double card within one page; one row is left for the "+N" line
var maxGroupTableRows = int(math.Floor((contentBottom-(headerTall+headerGap)-groupCardFixedHeight)/tableRowHeight)) - 1

type rect struct {
	X, Y, W, H float64
}

// layoutTags places n badges right-aligned at right, starting at y.
// Two badges split the available width with a gap; a single badge is capped at maxWidth.
// At most two badges are placed.
func layoutTags(n int, right, y, available, maxWidth, height, gap float64) []rect {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		w := math.Min(available, maxWidth)
		return []rect{{X: right - w, Y: y, W: w, H: height}}
	default:
		w := (available - gap) / 2
		return []rect{
			{X: right - 2*w - gap, Y: y, W: w, H: height},
			{X: right - w, Y: y, W: w, H: height},
		}
	}
}

// fitRect scales an image of w x h pixels to fit inside box, centered
func fitRect(w, h int, box rect) rect {
	if w <= 0 || h <= 0 {
		return box
	}
	scale := math.Min(box.W/float64(w), box.H/float64(h))
	fw := float64(w) * scale
	fh := float64(h) * scale
	return rect{X: box.X + (box.W-fw)/2, Y: box.Y + (box.H-fh)/2, W: fw, H: fh}
}
