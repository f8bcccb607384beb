package orders

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/ucampus/campus-events-api/internal/models"
)

// Generator renders order-of-payment and completion-certificate PDFs
// into a local directory. Registrations must be loaded with their User
// and EventDetail.
type Generator struct {
	dir     string
	appName string
}

func NewGenerator(dir, appName string) *Generator {
	return &Generator{dir: dir, appName: appName}
}

// Result of a generation request. Applicable is false for designed
// non-error outcomes (free offering, incomplete registration); Reason
// says why.
type Result struct {
	Applicable bool   `json:"applicable"`
	Reason     string `json:"reason,omitempty"`
	Folio      string `json:"folio,omitempty"`
	Path       string `json:"path,omitempty"`
}

// OrderOfPayment issues the bank-payable order for a cost-bearing
// registration. A free offering is a designed "not applicable" outcome,
// not a failure.
func (g *Generator) OrderOfPayment(reg models.Registration, payment models.Payment) (*Result, error) {
	if reg.EventDetail.CostCents == 0 {
		return &Result{Applicable: false, Reason: "offering is free; no order of payment is issued"}, nil
	}

	folio := uuid.NewString()
	path := filepath.Join(g.dir, fmt.Sprintf("order-%d-%s.pdf", reg.ID, folio))
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, g.appName)
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Order of Payment")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	g.row(pdf, "Folio", folio)
	g.row(pdf, "Date", time.Now().Format("2006-01-02"))
	g.row(pdf, "Student", fmt.Sprintf("%s <%s>", reg.User.Username, reg.User.Email))
	g.row(pdf, "Offering", reg.EventDetail.Title)
	g.row(pdf, "Amount", formatCents(payment.AmountCents))
	g.row(pdf, "Method", payment.Method)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, err
	}
	return &Result{Applicable: true, Folio: folio, Path: path}, nil
}

// Certificate issues the completion certificate. Only available once
// every requirement of the registration has been approved.
func (g *Generator) Certificate(reg models.Registration) (*Result, error) {
	if !reg.Completed {
		return &Result{Applicable: false, Reason: "registration is not complete"}, nil
	}

	folio := uuid.NewString()
	path := filepath.Join(g.dir, fmt.Sprintf("certificate-%d-%s.pdf", reg.ID, folio))
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 30, g.appName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 12, "certifies that", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 16, reg.User.Username, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 12, fmt.Sprintf("completed %q", reg.EventDetail.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 20, "Folio: "+folio, "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, err
	}
	return &Result{Applicable: true, Folio: folio, Path: path}, nil
}

func (g *Generator) row(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 8, label, "", 0, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, value, "", 1, "", false, 0, "")
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
