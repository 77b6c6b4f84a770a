package ticket

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// Page geometry in millimetres.  A card is 70mm tall and cards are 80mm
// apart; a new page starts once the cursor passes pageBreakY.
const (
	cardHeight  = 70.0
	cardPitch   = 80.0
	pageBreakY  = 240.0
	firstCardY  = 60.0
	topMarginY  = 20.0
	headerBandH = 30.0
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileName returns the download name for a holder's ticket PDF, e.g.
// "Galaxy_Tickets_200012345678.pdf".
func (g *Generator) FileName(h Holder) string {
	prefix := "Tickets"
	if f := strings.Fields(g.Venue); len(f) > 0 {
		prefix = unsafeFileChars.ReplaceAllString(f[0], "") + "_Tickets"
	}
	return fmt.Sprintf("%s_%s.pdf", prefix, unsafeFileChars.ReplaceAllString(h.NIC, ""))
}

// PDF renders every ticket of b as a fixed layout card: QR block, title,
// venue and time line, holder and NIC lines, price, seat badge and ticket
// number footer.
func (g *Generator) PDF(b model.Booking, h Holder, tickets []model.Ticket, issued time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// header band
	pdf.SetFillColor(37, 99, 235)
	pdf.Rect(0, 0, 210, headerBandH, "F")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(0, 10)
	pdf.CellFormat(210, 12, tr(strings.ToUpper(g.Venue)+" - eTICKETS"), "", 0, "C", false, 0, "")

	unit := 0.0
	if len(b.Seats) > 0 {
		unit = b.TotalPrice / float64(len(b.Seats))
	}
	date := issued.Format("2006-01-02")

	y := firstCardY
	for i, t := range tickets {
		if y > pageBreakY {
			pdf.AddPage()
			y = topMarginY
		}

		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(0.5)
		pdf.Rect(15, y, 180, cardHeight, "D")
		pdf.SetFillColor(245, 247, 250)
		pdf.Rect(15, y, 60, cardHeight, "F")

		if png, err := decodeDataURI(t.QRURL); err == nil && len(png) > 0 {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			name := fmt.Sprintf("qr_%d", i)
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
			pdf.ImageOptions(name, 22, y+10, 45, 45, false, opts, 0, "")
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(15, y+58)
		pdf.CellFormat(60, 6, "Scan at Entry", "", 0, "C", false, 0, "")

		const textX = 85.0
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(textX, y+15, tr(truncate(strings.ToUpper(b.MovieTitle), 28)))

		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(80, 80, 80)
		pdf.Text(textX, y+25, tr(g.Venue+" Hall"))
		pdf.Text(textX, y+32, tr(fmt.Sprintf("Showtime: %s | Date: %s", b.ShowTime, date)))

		pdf.SetDrawColor(220, 220, 220)
		pdf.Line(textX, y+38, 185, y+38)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(60, 60, 60)
		pdf.Text(textX, y+48, tr("Holder: "+truncate(h.Name, 40)))
		pdf.Text(textX, y+55, tr("NIC: "+h.NIC))

		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(37, 99, 235)
		pdf.Text(textX, y+65, fmt.Sprintf("Price: Rs. %.2f", unit))

		// seat badge
		pdf.SetFillColor(37, 99, 235)
		pdf.Rect(150, y+10, 40, 25, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(150, y+12)
		pdf.CellFormat(40, 6, "SEAT", "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 22)
		pdf.SetXY(150, y+20)
		pdf.CellFormat(40, 12, t.Seat, "", 0, "C", false, 0, "")

		pdf.SetTextColor(150, 150, 150)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(125, y+61)
		pdf.CellFormat(60, 6, t.TicketNo, "", 0, "R", false, 0, "")

		y += cardPitch
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
