package pdf

import (
	"fmt"

	"github.com/yansassi/hecho-adm-sub001/catalog"
	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pricing"
	"github.com/yansassi/hecho-adm-sub001/utils"
)

const (
	tableCodeWidth  = 18.0
	tablePriceWidth = 22.0
)

// renderGrid lays out every category on its own run of pages
func (r *renderer) renderGrid(buckets []models.CategoryBucket, groups [][]models.ProductGroup) error {
	for i, bucket := range buckets {
		q := newGridQueue(groups[i])
		for !q.empty() {
			if err := r.ctx.Err(); err != nil {
				return err
			}
			top := r.beginPage(bucket.Name)
			plan := planGridPage(q, top, contentBottom, r.measureCard)
			r.drawGridPage(q, plan, top)
		}
	}
	return nil
}

// tableRows returns how many variation rows a group card shows and how many are left out
func tableRows(g models.ProductGroup) (shown, hidden int) {
	shown = len(g.Variations)
	if shown > maxGroupTableRows {
		return maxGroupTableRows, shown - maxGroupTableRows
	}
	return shown, 0
}

func (r *renderer) measureCard(g models.ProductGroup) float64 {
	if !g.IsVariationGroup {
		return singleCardHeight
	}
	shown, hidden := tableRows(g)
	h := groupCardFixedHeight + float64(shown)*tableRowHeight
	if hidden > 0 {
		h += tableRowHeight
	}
	return h
}

func (r *renderer) drawGridPage(q *gridQueue, plan gridPage, top float64) {
	page := r.currentPage()
	y := top
	for rowIndex, row := range plan.rows {
		for _, c := range row.cards {
			g := q.entries[c.entry].group
			x := pageMargin + float64(c.column)*(columnWidth+gridGap)
			var card CardInfo
			if c.span == 2 {
				w := 2*columnWidth + gridGap
				card = r.drawGroupCard(g, rect{X: x, Y: y, W: w, H: row.height})
			} else {
				card = r.drawSingleCard(g.Main, rect{X: x, Y: y, W: columnWidth, H: row.height})
			}
			card.Row = rowIndex
			card.Column = c.column
			page.Cards = append(page.Cards, card)
		}
		y += row.height + gridGap
	}
}

func (r *renderer) drawCardFrame(card rect) {
	d := r.doc
	d.drawColor(colorBorder)
	d.pdf.SetLineWidth(0.3)
	d.pdf.RoundedRect(card.X, card.Y, card.W, card.H, 1.5, "1234", "D")
}

// drawCodeBar draws the dark bar with the product code at the bottom of a card
func (r *renderer) drawCodeBar(card rect, code string) {
	d := r.doc
	y := card.Y + card.H - codeBarHeight
	d.fillColor(colorBrand)
	d.pdf.Rect(card.X, y, card.W, codeBarHeight, "F")
	d.textColor(colorWhite)
	d.font("B", 7)
	d.cell(card.X, y, card.W, codeBarHeight, d.fitLine("Cód. "+code, card.W-2), "CM", false)
}

func (r *renderer) drawSingleCard(p models.Product, card rect) CardInfo {
	d := r.doc
	r.drawCardFrame(card)

	box := rect{X: card.X + cardPadding, Y: card.Y + cardPadding, W: cardImageSide, H: cardImageSide}
	r.drawProductImage(p.ImageURL, box, 1)

	tags := catalog.TagsFor(p, r.promotions, r.bestSellers, r.now)
	r.drawTags(tags, layoutTags(len(tags), box.X+box.W-1, box.Y+1, box.W-2, gridTagMaxWidth, gridTagHeight, gridTagGap), 6)

	inner := card.W - 2*cardPadding
	y := box.Y + box.H + 1
	d.textColor(colorText)
	d.font("B", 8)
	d.cell(box.X, y, inner, 5, d.fitLine(d.upperCase(p.Name), inner), "LM", false)
	y += cardNameHeight - 1

	d.textColor(colorMuted)
	d.font("", 6)
	for _, line := range d.wrap(utils.PlainText(p.Description), inner, 2) {
		d.cell(box.X, y, inner, cardDescLine, line, "LM", false)
		y += cardDescLine
	}
	if p.PackageQuantity != "" {
		d.font("I", 6)
		y = box.Y + box.H + cardNameHeight + 2*cardDescLine
		d.cell(box.X, y, inner, cardPackageLine, d.fitLine(p.PackageQuantity, inner), "LM", false)
	}

	info := CardInfo{ProductIDs: []int64{p.ID}, Tags: tagKinds(tags)}
	if r.opts.IncludePrice {
		q := pricing.QuoteFor(p, r.opts.PriceTier, r.promotions)
		info.Quote = &q
		r.drawPriceBox(q, rect{
			X: box.X,
			Y: card.Y + card.H - codeBarHeight - priceBoxHeight - 1,
			W: inner,
			H: priceBoxHeight,
		})
	}
	r.drawCodeBar(card, p.Code)
	return info
}

// drawPriceBox draws the highlighted price; a promotion shows the struck base price on the left
func (r *renderer) drawPriceBox(q pricing.Quote, box rect) {
	d := r.doc
	d.fillColor(colorPriceBox)
	d.pdf.RoundedRect(box.X, box.Y, box.W, box.H, 1, "1234", "F")

	final := utils.FormatBRL(q.Final)
	if !q.HasPromotion() {
		d.textColor(colorText)
		d.font("B", 10)
		d.cell(box.X, box.Y, box.W, box.H, final, "CM", false)
		return
	}

	base := utils.FormatBRL(q.Base)
	d.textColor(colorMuted)
	d.font("", 6)
	d.cell(box.X+0.5, box.Y, box.W/2, box.H, base, "LM", false)
	d.drawColor(colorMuted)
	d.strike(box.X+0.5+d.pdf.GetCellMargin(), box.Y+box.H/2+6*0.352778*0.3, d.width(base), 6)

	d.textColor(colorPromo)
	d.font("B", 9)
	d.cell(box.X, box.Y, box.W-0.5, box.H, final, "RM", false)
}

func (r *renderer) drawGroupCard(g models.ProductGroup, card rect) CardInfo {
	d := r.doc
	r.drawCardFrame(card)

	box := rect{X: card.X + cardPadding, Y: card.Y + cardPadding, W: cardImageSide, H: cardImageSide}
	r.drawProductImage(groupImageURL(g), box, 1)

	side := rect{X: box.X + box.W + 3, Y: box.Y}
	side.W = card.X + card.W - cardPadding - side.X

	tags := catalog.GroupTags(g, r.promotions, r.bestSellers, r.now)
	r.drawTags(tags, layoutTags(len(tags), side.X+side.W, side.Y, side.W, gridTagMaxWidth, gridTagHeight, gridTagGap), 6)

	y := side.Y + gridTagHeight + 2
	d.textColor(colorText)
	d.font("B", 9)
	d.cell(side.X, y, side.W, 5, d.fitLine(d.upperCase(g.Main.Name), side.W), "LM", false)
	y += 5.5

	if desc := utils.PlainText(g.Main.Description); desc != "" {
		d.textColor(colorMuted)
		d.font("", 7)
		d.cell(side.X, y, side.W, 4, d.fitLine(desc, side.W), "LM", false)
		y += 4.5
	}
	d.textColor(colorMuted)
	d.font("I", 7)
	d.cell(side.X, y, side.W, 4, fmt.Sprintf("%d variações", len(g.Variations)), "LM", false)

	info := CardInfo{Group: true, Tags: tagKinds(tags)}
	for _, v := range g.Variations {
		info.ProductIDs = append(info.ProductIDs, v.ID)
	}
	info.Rows, info.HiddenRows = r.drawVariationTable(g, card)
	r.drawCodeBar(card, g.Main.Code)
	return info
}

// groupImageURL picks the main product's image, else the first variation that has one
func groupImageURL(g models.ProductGroup) string {
	if g.Main.ImageURL != "" {
		return g.Main.ImageURL
	}
	for _, v := range g.Variations {
		if v.ImageURL != "" {
			return v.ImageURL
		}
	}
	return ""
}

// drawVariationTable draws the code/description/price table right above the code bar
func (r *renderer) drawVariationTable(g models.ProductGroup, card rect) ([]PriceRow, int) {
	d := r.doc
	shown, hidden := tableRows(g)
	lines := shown + 1
	if hidden > 0 {
		lines++
	}

	x := card.X + cardPadding
	w := card.W - 2*cardPadding
	y := card.Y + card.H - codeBarHeight - 1 - float64(lines)*tableRowHeight

	priceWidth := 0.0
	if r.opts.IncludePrice {
		priceWidth = tablePriceWidth
	}
	descWidth := w - tableCodeWidth - priceWidth

	d.fillColor(colorTableHead)
	d.pdf.Rect(x, y, w, tableRowHeight, "F")
	d.textColor(colorWhite)
	d.font("B", 6)
	d.cell(x, y, tableCodeWidth, tableRowHeight, "Código", "LM", false)
	d.cell(x+tableCodeWidth, y, descWidth, tableRowHeight, "Descrição", "LM", false)
	if r.opts.IncludePrice {
		d.cell(x+tableCodeWidth+descWidth, y, priceWidth, tableRowHeight, "Valor", "CM", false)
	}
	y += tableRowHeight

	rows := make([]PriceRow, 0, shown)
	d.drawColor(colorBorder)
	d.pdf.SetLineWidth(0.1)
	for _, v := range g.Variations[:shown] {
		desc := utils.PlainText(v.Description)
		if desc == "" {
			desc = v.Name
		}
		row := PriceRow{ProductID: v.ID, Code: v.Code, Description: desc}

		d.textColor(colorText)
		d.font("", 6)
		d.cell(x, y, tableCodeWidth, tableRowHeight, d.fitLine(v.Code, tableCodeWidth-1), "LM", false)
		d.cell(x+tableCodeWidth, y, descWidth, tableRowHeight, d.fitLine(desc, descWidth-1), "LM", false)

		if r.opts.IncludePrice {
			row.Quote = pricing.QuoteFor(v, r.opts.PriceTier, r.promotions)
			px := x + tableCodeWidth + descWidth
			d.fillColor(colorPriceBox)
			d.pdf.Rect(px+0.3, y+0.3, priceWidth-0.6, tableRowHeight-0.6, "F")
			d.textColor(colorText)
			d.font("B", 6)
			if row.Quote.HasPromotion() {
				d.textColor(colorPromo)
			}
			d.cell(px, y, priceWidth, tableRowHeight, utils.FormatBRL(row.Quote.Final), "CM", false)
		}
		d.pdf.Line(x, y+tableRowHeight, x+w, y+tableRowHeight)
		rows = append(rows, row)
		y += tableRowHeight
	}
	if hidden > 0 {
		d.textColor(colorMuted)
		d.font("I", 6)
		d.cell(x, y, w, tableRowHeight, fmt.Sprintf("+%d variações", hidden), "LM", false)
	}
	return rows, hidden
}
