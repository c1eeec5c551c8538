package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"wisata/internal/bookings"
)

var (
	ErrBookingNotPaid = errors.New("booking has not been paid yet")
)

// BookingLookup is the slice of the bookings service the document
// generators need.
type BookingLookup interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*bookings.BookingResponse, error)
}

// Service renders booking documents as PDFs. The e-ticket is only issued
// once the admin has confirmed the payment; invoices work either way.
type Service interface {
	GenerateETicket(ctx context.Context, bookingID uuid.UUID) ([]byte, string, error)
	GenerateInvoice(ctx context.Context, bookingID uuid.UUID) ([]byte, string, error)
}

type service struct {
	bookings BookingLookup
}

func NewService(bookingService BookingLookup) Service {
	return &service{bookings: bookingService}
}

func (s *service) GenerateETicket(ctx context.Context, bookingID uuid.UUID) ([]byte, string, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if !booking.IsPaid {
		return nil, "", ErrBookingNotPaid
	}
	return buildETicketPDF(booking)
}

func (s *service) GenerateInvoice(ctx context.Context, bookingID uuid.UUID) ([]byte, string, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	return buildInvoicePDF(booking)
}

func buildETicketPDF(b *bookings.BookingResponse) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Transaction Code : %s", b.TransactionCode),
		fmt.Sprintf("Customer         : %s", safe(b.CustomerName, "-")),
		fmt.Sprintf("Phone            : %s", safe(b.CustomerPhone, "-")),
		fmt.Sprintf("Visit Date       : %s", safe(b.VisitDate, "-")),
		fmt.Sprintf("Visitors         : %d", b.Quantity),
		fmt.Sprintf("Vehicle          : %s x%d", safe(b.VehicleType, "-"), b.VehicleCount),
		fmt.Sprintf("Total Paid       : %s", formatRupiah(b.TotalAmount)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Visitor List:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, v := range b.Visitors {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s (age %d)", i+1, safe(v.Name, "-"), v.Age))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Show this e-ticket and your transaction code at the entrance on your visit date.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", b.TransactionCode, safeFilenamePart(b.CustomerName))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(b *bookings.BookingResponse) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No  : INV-"+b.TransactionCode)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date        : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(b.CustomerName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email : %s", safe(b.CustomerEmail, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Phone : %s", safe(b.CustomerPhone, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	desc := fmt.Sprintf("Admission tickets for %s, %d visitor(s)", safe(b.VisitDate, "-"), b.Quantity)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Unit Price: "+formatRupiah(b.UnitPrice))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+formatRupiah(b.TotalAmount))
	pdf.Ln(10)

	status := "UNPAID"
	if b.IsPaid {
		status = "PAID"
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Payment Status: "+status)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payment is verified manually against the uploaded transfer proof.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%s_%s.pdf", b.TransactionCode, safeFilenamePart(b.CustomerName))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func formatRupiah(v float64) string {
	if v <= 0 {
		return "Rp 0"
	}
	s := fmt.Sprintf("%.0f", v)
	var out []byte
	n := len(s)
	for i := 0; i < n; i++ {
		out = append(out, s[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, '.')
		}
	}
	return "Rp " + string(out)
}
