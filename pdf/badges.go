package pdf

import (
	"github.com/yansassi/hecho-adm-sub001/models"
)

const minTagFontSize = 4.0

// drawTags fills each box with its tag, shrinking the label until it fits
func (r *renderer) drawTags(tags []models.Tag, boxes []rect, fontSize float64) {
	d := r.doc
	for i, box := range boxes {
		if i >= len(tags) {
			break
		}
		tag := tags[i]
		d.fillColor(tag.Color)
		d.pdf.RoundedRect(box.X, box.Y, box.W, box.H, box.H/3, "1234", "F")

		size := fontSize
		d.font("B", size)
		for d.width(tag.Label) > box.W-1 && size > minTagFontSize {
			size -= 0.5
			d.font("B", size)
		}
		d.textColor(colorWhite)
		d.cell(box.X, box.Y, box.W, box.H, d.fitLine(tag.Label, box.W-1), "CM", false)
	}
}

// drawDiscountBadge draws the promotion discount label right-aligned at right
func (r *renderer) drawDiscountBadge(label string, right, y float64) {
	if label == "" {
		return
	}
	d := r.doc
	d.font("B", 13)
	w := d.width(label) + 6
	d.fillColor(colorPromo)
	d.pdf.RoundedRect(right-w, y, w, 10, 2, "1234", "F")
	d.textColor(colorWhite)
	d.cell(right-w, y, w, 10, label, "CM", false)
}

func tagKinds(tags []models.Tag) []models.TagKind {
	kinds := make([]models.TagKind, 0, len(tags))
	for _, t := range tags {
		kinds = append(kinds, t.Kind)
	}
	return kinds
}
