package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"

	"github.com/yansassi/hecho-adm-sub001/models"
)

const fontFamily = "Helvetica"

const ellipsis = "..."

var imageOptions = fpdf.ImageOptions{}

var (
	colorBrand     = models.RGB{R: 30, G: 41, B: 59}
	colorAccent    = models.RGB{R: 251, G: 191, B: 36}
	colorText      = models.RGB{R: 31, G: 41, B: 55}
	colorMuted     = models.RGB{R: 107, G: 114, B: 128}
	colorBorder    = models.RGB{R: 226, G: 232, B: 240}
	colorWhite     = models.RGB{R: 255, G: 255, B: 255}
	colorPriceBox  = models.RGB{R: 253, G: 224, B: 71}
	colorPromo     = models.RGB{R: 220, G: 38, B: 38}
	colorSavings   = models.RGB{R: 22, G: 163, B: 74}
	colorChip      = models.RGB{R: 219, G: 234, B: 254}
	colorTableHead = models.RGB{R: 71, G: 85, B: 105}
)

// document wraps the fpdf canvas. Core fonts are cp1252, so every string
// goes through tr before being measured or drawn.
type document struct {
	pdf    *fpdf.Fpdf
	upper  cases.Caser
	images map[string]registeredImage
}

type registeredImage struct {
	name          string
	width, height int
}

func newDocument() *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetCompression(true)
	return &document{
		pdf:    pdf,
		upper:  cases.Upper(language.BrazilianPortuguese),
		images: make(map[string]registeredImage),
	}
}

// tr converts UTF-8 text to the cp1252 bytes the core fonts expect.
// Runes outside cp1252 become '?'.
func (d *document) tr(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

func (d *document) upperCase(s string) string {
	return d.upper.String(s)
}

func (d *document) font(style string, size float64) {
	d.pdf.SetFont(fontFamily, style, size)
}

func (d *document) textColor(c models.RGB) {
	d.pdf.SetTextColor(c.R, c.G, c.B)
}

func (d *document) fillColor(c models.RGB) {
	d.pdf.SetFillColor(c.R, c.G, c.B)
}

func (d *document) drawColor(c models.RGB) {
	d.pdf.SetDrawColor(c.R, c.G, c.B)
}

// width measures UTF-8 text in the current font
func (d *document) width(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}

// cell draws UTF-8 text in a box; align is an fpdf alignment such as "LM" or "CM"
func (d *document) cell(x, y, w, h float64, text, align string, fill bool) {
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, h, d.tr(text), "", 0, align, fill, 0, "")
}

// wrap breaks text into at most maxLines lines no wider than w in the current
// font. When text does not fit, the last line ends with an ellipsis.
func (d *document) wrap(text string, w float64, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	current := ""
	truncated := false
	for i := 0; i < len(words); i++ {
		word := words[i]
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if d.width(candidate) <= w {
			current = candidate
			continue
		}
		if current == "" {
			// a single word wider than the line is cut
			head, tail := d.splitWord(word, w)
			lines = append(lines, head)
			if tail == "" {
				if len(lines) == maxLines {
					truncated = i < len(words)-1
					break
				}
				continue
			}
			words[i] = tail
			i--
		} else {
			lines = append(lines, current)
			current = ""
			i--
		}
		if len(lines) == maxLines {
			truncated = true
			break
		}
	}
	if !truncated && current != "" {
		if len(lines) == maxLines {
			truncated = true
		} else {
			lines = append(lines, current)
		}
	}
	if truncated {
		lines[len(lines)-1] = d.ellipsize(lines[len(lines)-1], w)
	}
	return lines
}

// fitLine returns text on a single line, ellipsized when too wide
func (d *document) fitLine(text string, w float64) string {
	lines := d.wrap(text, w, 1)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func (d *document) ellipsize(line string, w float64) string {
	for line != "" && d.width(line+ellipsis) > w {
		_, size := utf8.DecodeLastRuneInString(line)
		line = strings.TrimRight(line[:len(line)-size], " ")
	}
	return line + ellipsis
}

func (d *document) splitWord(word string, w float64) (string, string) {
	for i := range word {
		if i > 0 && d.width(word[:i]) > w {
			_, size := utf8.DecodeLastRuneInString(word[:i])
			cut := i - size
			if cut == 0 {
				cut = i
			}
			return word[:cut], word[cut:]
		}
	}
	return word, ""
}

// registerImage embeds img once under key and returns its registration
func (d *document) registerImage(key string, img models.ImagePayload) (registeredImage, error) {
	if reg, ok := d.images[key]; ok {
		return reg, nil
	}
	// a pending canvas error belongs to an earlier call and must survive
	if err := d.pdf.Error(); err != nil {
		return registeredImage{}, fmt.Errorf("failed to register image %s: %w", key, err)
	}
	name := fmt.Sprintf("img%d", len(d.images)+1)
	info := d.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
	if info == nil || !d.pdf.Ok() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return registeredImage{}, fmt.Errorf("failed to register image %s: %w", key, err)
	}
	reg := registeredImage{name: name, width: img.Width, height: img.Height}
	d.images[key] = reg
	return reg, nil
}

// drawImage places a registered image inside box keeping its aspect ratio
func (d *document) drawImage(reg registeredImage, box rect) {
	r := fitRect(reg.width, reg.height, box)
	d.pdf.ImageOptions(reg.name, r.X, r.Y, r.W, r.H, false, imageOptions, 0, "")
}

// strike draws a horizontal line through text drawn at (x, baseline)
func (d *document) strike(x, baseline, w, fontSize float64) {
	y := baseline - fontSize*0.352778*0.3
	d.pdf.SetLineWidth(0.3)
	d.pdf.Line(x, y, x+w, y)
}
