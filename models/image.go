package models

// ImagePayload is an image ready to be embedded in a PDF
type ImagePayload struct {
	Data        []byte // encoded image bytes
	Type        string // fpdf image type: "JPG" or "PNG"
	Width       int    // pixels
	Height      int    // pixels
	Placeholder bool   // true when Data is the built-in placeholder
}
