package pass

import (
	"bytes"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"festival-pass/ticketcode"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, w, h int) string {
	t.Helper()

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	path := filepath.Join(t.TempDir(), "template.png")
	require.NoError(t, dc.SavePNG(path))
	return path
}

func sampleRequest() Request {
	return Request{
		BookingID:     "ABDR123456XYZ",
		TicketIndex:   0,
		AdultCount:    2,
		ChildrenCount: 1,
		Adults: []Adult{
			{Name: "Asha Rao", Mobile: "9876543210"},
			{Name: "Vikram Rao", Mobile: "9876500000"},
		},
		ChildNames: []string{"Meera Rao"},
	}
}

func TestNewRendererMissingTemplate(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "missing.png"), "Festival 2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load pass template")
}

func TestRenderProducesValidPng(t *testing.T) {
	r, err := NewRenderer(writeTemplate(t, 1000, 600), "Festival 2026")
	require.NoError(t, err)

	p, err := r.Render(sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "pass_ABDR123456XYZ_ticket_1.png", p.Filename)
	assert.Equal(t, "image/png", p.ContentType)

	img, err := png.Decode(bytes.NewReader(p.Content))
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestRenderDeterministic(t *testing.T) {
	r, err := NewRenderer(writeTemplate(t, 1000, 600), "Festival 2026")
	require.NoError(t, err)

	first, err := r.Render(sampleRequest())
	require.NoError(t, err)

	second, err := r.Render(sampleRequest())
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first.Content, second.Content))
}

func TestRenderFilenameIsOneBased(t *testing.T) {
	r, err := NewRenderer(writeTemplate(t, 800, 500), "Festival 2026")
	require.NoError(t, err)

	req := sampleRequest()
	req.TicketIndex = 2

	p, err := r.Render(req)
	require.NoError(t, err)
	assert.Equal(t, "pass_ABDR123456XYZ_ticket_3.png", p.Filename)
}

func TestQrContent(t *testing.T) {
	r := &Renderer{eventLabel: "Festival 2026"}
	req := sampleRequest()
	code := ticketcode.Generate(req.BookingID, req.TicketIndex)

	content := r.qrContent(code, req)

	lines := strings.Split(content, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Festival 2026", lines[0])
	assert.Equal(t, "Ticket ID: "+code, lines[1])
	assert.Equal(t, "Adults: 2", lines[2])
	assert.Equal(t, "Children: 1", lines[3])
	assert.Equal(t, "Adult Names: Asha Rao, Vikram Rao", lines[4])
	assert.Equal(t, "Children Names: Meera Rao", lines[5])
	assert.Equal(t, "Mobile: 9876543210", lines[6])
}

func TestQrContentNoAdults(t *testing.T) {
	r := &Renderer{eventLabel: "Festival 2026"}

	content := r.qrContent("165 1455 945", Request{BookingID: "A", AdultCount: 0})

	assert.Contains(t, content, "Adult Names: \n")
	assert.True(t, strings.HasSuffix(content, "Mobile: "))
}

func TestMemberLines(t *testing.T) {
	testCases := []struct {
		name     string
		adults   int
		children int
		expected []string
	}{
		{name: "single adult", adults: 1, children: 0, expected: []string{"1 Adult"}},
		{name: "couple", adults: 2, children: 0, expected: []string{"2 Adults"}},
		{name: "one child", adults: 2, children: 1, expected: []string{"2 Adults", "1 Child"}},
		{name: "many children", adults: 1, children: 3, expected: []string{"1 Adult", "3 Children"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, memberLines(tc.adults, tc.children))
		})
	}
}
