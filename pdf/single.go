package pdf

import (
	"strings"

	"github.com/yansassi/hecho-adm-sub001/catalog"
	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pricing"
	"github.com/yansassi/hecho-adm-sub001/utils"
)

// renderSingle draws one page per product, category by category
func (r *renderer) renderSingle(buckets []models.CategoryBucket, groups [][]models.ProductGroup) error {
	for i, bucket := range buckets {
		for _, p := range catalog.Flatten(groups[i]) {
			if err := r.ctx.Err(); err != nil {
				return err
			}
			r.drawSinglePage(p, bucket.Name)
		}
	}
	return nil
}

func (r *renderer) drawSinglePage(p models.Product, category string) {
	d := r.doc
	top := r.beginPage(category)

	box := rect{X: (pageWidth - singleImageSide) / 2, Y: top, W: singleImageSide, H: singleImageSide}
	r.drawProductImage(p.ImageURL, box, 3)

	tags := catalog.TagsFor(p, r.promotions, r.bestSellers, r.now)
	tagBoxes := layoutTags(len(tags), box.X+box.W-3, box.Y+3, singleTagArea, singleTagMaxWidth, singleTagHeight, singleTagGap)
	r.drawTags(tags, tagBoxes, 9)

	quote := pricing.QuoteFor(p, r.opts.PriceTier, r.promotions)
	if quote.HasPromotion() {
		badgeY := box.Y + 3
		if len(tagBoxes) > 0 {
			badgeY += singleTagHeight + singleTagGap
		}
		r.drawDiscountBadge(pricing.DiscountLabel(quote), box.X+box.W-3, badgeY)
	}

	y := box.Y + box.H + 8

	d.textColor(colorText)
	d.font("B", 18)
	for _, line := range d.wrap(p.Name, contentWidth, 2) {
		d.cell(pageMargin, y, contentWidth, 8, line, "LM", false)
		y += 8
	}
	y += 1

	if desc := utils.PlainText(p.Description); desc != "" {
		d.textColor(colorMuted)
		d.font("", 11)
		for _, line := range d.wrap(desc, contentWidth, 3) {
			d.cell(pageMargin, y, contentWidth, 5.5, line, "LM", false)
			y += 5.5
		}
		y += 1
	}

	code := "Código: " + p.Code
	if p.Barcode != "" {
		code += "    EAN: " + p.Barcode
	}
	d.textColor(colorText)
	d.font("", 10)
	d.cell(pageMargin, y, contentWidth, 6, code, "LM", false)
	y += 7.5

	d.font("B", 9)
	chipWidth := d.width(category) + 8
	if chipWidth > contentWidth {
		chipWidth = contentWidth
	}
	d.fillColor(colorChip)
	d.pdf.RoundedRect(pageMargin, y, chipWidth, 7, 3, "1234", "F")
	d.textColor(colorBrand)
	d.cell(pageMargin, y, chipWidth, 7, d.fitLine(category, chipWidth-2), "CM", false)
	y += 10

	if extra := joinNonEmpty(" - ", utils.PlainText(p.Info), p.PackageQuantity); extra != "" {
		d.textColor(colorMuted)
		d.font("I", 9)
		d.cell(pageMargin, y, contentWidth, 5, d.fitLine(extra, contentWidth), "LM", false)
		y += 7
	}

	card := CardInfo{ProductIDs: []int64{p.ID}, Tags: tagKinds(tags)}
	if r.opts.IncludePrice {
		q := quote
		card.Quote = &q
		r.drawSinglePrice(quote, y)
	}
	page := r.currentPage()
	page.Cards = append(page.Cards, card)
}

// drawSinglePrice draws the price block: struck original, promotional price and
// savings when a promotion applies, the plain tier price otherwise
func (r *renderer) drawSinglePrice(q pricing.Quote, y float64) {
	d := r.doc
	y += 2
	if !q.HasPromotion() {
		d.textColor(colorText)
		d.font("B", 26)
		d.cell(pageMargin, y, contentWidth, 12, utils.FormatBRL(q.Final), "LM", false)
		return
	}

	original := "De " + utils.FormatBRL(q.Base)
	d.textColor(colorMuted)
	d.font("", 12)
	d.cell(pageMargin, y, contentWidth, 6, original, "LM", false)
	d.drawColor(colorMuted)
	d.strike(pageMargin+d.pdf.GetCellMargin(), y+3+12*0.352778*0.3, d.width(original), 12)
	y += 7

	d.textColor(colorPromo)
	d.font("B", 26)
	d.cell(pageMargin, y, contentWidth, 12, "Por "+utils.FormatBRL(q.Final), "LM", false)
	y += 13

	if q.Savings > 0 {
		d.textColor(colorSavings)
		d.font("B", 11)
		d.cell(pageMargin, y, contentWidth, 6, "Economize "+utils.FormatBRL(q.Savings), "LM", false)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
