// Package pass renders the entry pass for one ticket: the fixed background
// template composited with the rotated ticket code, the member-count lines and
// a rounded-corner QR. Email attachments and interactive downloads both go
// through this renderer, so the layout formulas here are the only copy.
package pass

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strings"

	"festival-pass/ticketcode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Layout anchors as fractions of the template dimensions. These must not
// drift: passes already issued were rendered with exactly these values.
const (
	codeXFrac  = 0.185
	codeYFrac  = 0.5
	countYFrac = 0.83
	qrXFrac    = 0.032
	qrYFrac    = 0.32
	qrSizeFrac = 0.13

	codeFontSize  = 30
	countFontSize = 45
	lineSpacing   = 50
	cornerRadius  = 15
	qrEncodeWidth = 200
)

// Adult is the slice of attendee data the pass needs: display name and the
// mobile number that goes into the QR payload for the primary contact.
type Adult struct {
	Name   string
	Mobile string
}

type Request struct {
	BookingID     string
	TicketIndex   int
	AdultCount    int
	ChildrenCount int
	Adults        []Adult
	ChildNames    []string
}

type Pass struct {
	Filename    string
	Content     []byte
	ContentType string
}

type Renderer struct {
	template   image.Image
	eventLabel string
	codeFace   font.Face
	countFace  font.Face
}

// NewRenderer loads the background template once; a missing or unreadable
// template fails construction rather than every render.
func NewRenderer(templatePath, eventLabel string) (*Renderer, error) {
	tmpl, err := gg.LoadImage(templatePath)
	if err != nil {
		return nil, fmt.Errorf("load pass template: %w", err)
	}

	ft, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse pass font: %w", err)
	}

	return &Renderer{
		template:   tmpl,
		eventLabel: eventLabel,
		codeFace:   truetype.NewFace(ft, &truetype.Options{Size: codeFontSize}),
		countFace:  truetype.NewFace(ft, &truetype.Options{Size: countFontSize}),
	}, nil
}

// Render produces the PNG pass for one ticket. It is deterministic: the same
// request always yields byte-identical output.
func (r *Renderer) Render(req Request) (Pass, error) {
	code := ticketcode.Generate(req.BookingID, req.TicketIndex)

	qr, err := qrcode.New(r.qrContent(code, req), qrcode.Medium)
	if err != nil {
		return Pass{}, fmt.Errorf("encode qr: %w", err)
	}
	qrImg := qr.Image(qrEncodeWidth)

	bounds := r.template.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	codeX := math.Floor(float64(w) * codeXFrac)
	codeY := math.Floor(float64(h) * codeYFrac)
	countY := math.Floor(float64(h) * countYFrac)
	qrX := math.Floor(float64(w) * qrXFrac)
	qrY := math.Floor(float64(h) * qrYFrac)
	qrSize := math.Floor(float64(w) * qrSizeFrac)

	dc := gg.NewContext(w, h)
	dc.DrawImage(r.template, 0, 0)
	dc.SetRGB(0, 0, 0)

	// Ticket code, rotated a quarter turn counter-clockwise about its anchor.
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), codeX, codeY)
	dc.SetFontFace(r.codeFace)
	dc.DrawString(code, codeX, codeY)
	dc.Pop()

	// Member count, centered on the QR box's horizontal center.
	dc.SetFontFace(r.countFace)
	qrCenterX := qrX + qrSize/2
	for i, line := range memberLines(req.AdultCount, req.ChildrenCount) {
		dc.DrawStringAnchored(line, qrCenterX, countY+float64(i)*lineSpacing, 0.5, 0)
	}

	// QR clipped to a rounded rectangle and scaled into its box.
	dc.Push()
	dc.DrawRoundedRectangle(qrX, qrY, qrSize, qrSize, cornerRadius)
	dc.Clip()
	dc.Translate(qrX, qrY)
	scale := qrSize / qrEncodeWidth
	dc.Scale(scale, scale)
	dc.DrawImage(qrImg, 0, 0)
	dc.Pop()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return Pass{}, fmt.Errorf("encode pass png: %w", err)
	}

	return Pass{
		Filename:    fmt.Sprintf("pass_%s_ticket_%d.png", req.BookingID, req.TicketIndex+1),
		Content:     buf.Bytes(),
		ContentType: "image/png",
	}, nil
}

func (r *Renderer) qrContent(code string, req Request) string {
	adultNames := make([]string, 0, len(req.Adults))
	for _, a := range req.Adults {
		adultNames = append(adultNames, a.Name)
	}

	mobile := ""
	if len(req.Adults) > 0 {
		mobile = req.Adults[0].Mobile
	}

	return fmt.Sprintf("%s\nTicket ID: %s\nAdults: %d\nChildren: %d\nAdult Names: %s\nChildren Names: %s\nMobile: %s",
		r.eventLabel,
		code,
		req.AdultCount,
		req.ChildrenCount,
		strings.Join(adultNames, ", "),
		strings.Join(req.ChildNames, ", "),
		mobile,
	)
}

func memberLines(adults, children int) []string {
	line1 := fmt.Sprintf("%d Adult", adults)
	if adults > 1 {
		line1 += "s"
	}

	lines := []string{line1}
	if children > 0 {
		line2 := fmt.Sprintf("%d Child", children)
		if children > 1 {
			line2 += "ren"
		}
		lines = append(lines, line2)
	}

	return lines
}
