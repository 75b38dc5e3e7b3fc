package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/availability"
	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// RenderReceipt draws a one-page stay receipt for a booking. The QR code
// carries the booking id so the host can look it up at check-in.
func RenderReceipt(b *models.Booking, place *models.Place, tenant *models.User, issuedAt time.Time) ([]byte, error) {
	if place == nil {
		return nil, errors.New("receipt: booking has no place loaded")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("HBnB receipt", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "HBnB STAY RECEIPT")
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Issued "+issuedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 50, "F")

	pdf.SetXY(20, yStart+6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "BOOKING")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	line(pdf, "Booking ID: %s", b.ID)
	line(pdf, "Status: %s", b.Status)
	line(pdf, "Check-in: %s", b.CheckIn.Format(availability.DateLayout))
	line(pdf, "Check-out: %s", b.CheckOut.Format(availability.DateLayout))
	line(pdf, "Guests: %d", b.Guests)

	png, err := qrcode.Encode("hbnb:booking:"+b.ID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("receipt qr: %w", err)
	}
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(png))
	pdf.ImageOptions("qr", 145, yStart+3, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 58)

	section(pdf, "PLACE")
	line(pdf, "%s", place.Name)
	line(pdf, "%s, %s, %s", place.Address, place.City, place.Country)
	pdf.Ln(4)

	if tenant != nil {
		section(pdf, "GUEST")
		line(pdf, "%s %s", tenant.FirstName, tenant.LastName)
		line(pdf, "%s", tenant.Email)
		pdf.Ln(4)
	}

	section(pdf, "AMOUNT")
	nights := b.Nights()
	line(pdf, "%d night(s) x %d = %d", nights, place.PricePerNight, b.TotalPrice(place))

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 285, 195, 285)
	pdf.SetY(288)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Show this receipt to your host at check-in.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt output: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
}

func line(pdf *gofpdf.Fpdf, format string, args ...any) {
	pdf.Cell(0, 7, fmt.Sprintf(format, args...))
	pdf.Ln(6)
}
