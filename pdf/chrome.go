package pdf

import "fmt"

// drawHeader draws the top banner and returns the y where page content starts.
// The banner is taller when a category label is shown.
func (r *renderer) drawHeader(title, category string) float64 {
	d := r.doc
	h := headerShort
	if category != "" {
		h = headerTall
	}

	d.fillColor(colorBrand)
	d.pdf.Rect(0, 0, pageWidth, h, "F")
	d.fillColor(colorAccent)
	d.pdf.Rect(0, h-1, pageWidth, 1, "F")

	textWidth := contentWidth
	if r.logo != nil {
		logoWidth := logoHeight * float64(r.cfg.LogoWidthPx) / float64(r.cfg.LogoHeightPx)
		x := pageWidth - pageMargin - logoWidth
		y := (h - 1 - logoHeight) / 2
		d.pdf.ImageOptions(r.logo.name, x, y, logoWidth, logoHeight, false, imageOptions, 0, "")
		textWidth -= logoWidth + 4
	}

	d.textColor(colorWhite)
	d.font("B", 15)
	if category == "" {
		d.cell(pageMargin, 0, textWidth, h-1, d.fitLine(title, textWidth), "LM", false)
		return h + headerGap
	}
	d.cell(pageMargin, 2, textWidth, 9, d.fitLine(title, textWidth), "LM", false)
	d.textColor(colorAccent)
	d.font("", 10)
	d.cell(pageMargin, 10.5, textWidth, 7, d.fitLine(category, textWidth), "LM", false)
	return h + headerGap
}

// drawFooter draws the bottom band with the site label centered and the page number
func (r *renderer) drawFooter() {
	d := r.doc
	y := pageHeight - footerHeight

	d.fillColor(colorBrand)
	d.pdf.Rect(0, y, pageWidth, footerHeight, "F")

	d.textColor(colorWhite)
	d.font("", 8)
	d.cell(0, y, pageWidth, footerHeight, r.cfg.SiteLabel, "CM", false)

	d.font("", 7)
	d.cell(pageWidth-pageMargin-30, y, 30, footerHeight, fmt.Sprintf("%d / {nb}", d.pdf.PageNo()), "RM", false)
}

// beginPage starts a page with its chrome and records it in the manifest
func (r *renderer) beginPage(category string) float64 {
	r.doc.pdf.AddPage()
	top := r.drawHeader(r.opts.Title, category)
	r.drawFooter()
	r.pages = append(r.pages, PageInfo{Number: r.doc.pdf.PageNo(), Category: category})
	return top
}

func (r *renderer) currentPage() *PageInfo {
	return &r.pages[len(r.pages)-1]
}
