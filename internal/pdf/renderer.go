// Package pdf renders stored invoices into single-page PDF documents.
package pdf

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"invoicegen/internal/domain"
	"invoicegen/internal/ledger"
	"invoicegen/internal/service"
)

// Renderer builds invoice PDFs with a fixed one-page layout: header,
// biller/client blocks, the line-item table, and the totals block.
type Renderer struct{}

// New creates a new Renderer.
func New() service.PDFRenderer {
	return &Renderer{}
}

// Render produces the PDF bytes for one invoice. Line amounts and totals are
// recomputed from the stored items so the document never drifts from the
// ledger arithmetic.
func (r *Renderer) Render(invoice *domain.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "INVOICE", props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	meta := []string{"Invoice No: " + invoice.InvoiceNo}
	if invoice.InvoiceDate != "" {
		meta = append(meta, "Date: "+invoice.InvoiceDate)
	}
	if invoice.DueDate != nil {
		meta = append(meta, "Due Date: "+invoice.DueDate.Format("2006-01-02"))
	}
	metaCol := col.New(6)
	for i, line := range meta {
		metaCol.Add(text.New(line, props.Text{Top: float64(i * 5), Size: 10}))
	}
	m.AddRow(float64(len(meta)*5+5),
		metaCol,
		text.NewCol(6, "Status: "+FormatPaymentStatus(invoice.PaymentStatus), props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	billedBy := invoice.BilledByParty()
	billedTo := invoice.BilledToParty()
	m.AddRow(36,
		partyCol(6, "Billed By", invoice.BilledByName, billedBy),
		partyCol(6, "Billed To", invoice.BilledToName, billedTo),
	)

	// Table header
	m.AddRow(8,
		headerCol(4, "Description", align.Left),
		headerCol(1, "Qty", align.Right),
		headerCol(1, "Rate", align.Right),
		headerCol(1, "Amount", align.Right),
		headerCol(1, "Tax %", align.Right),
		headerCol(1, "GST %", align.Right),
		headerCol(1, "VAT %", align.Right),
		headerCol(1, "Discount", align.Right),
		headerCol(1, "Total", align.Right),
	)

	items := invoice.LineItems()
	for i := range items {
		item := items[i]
		amount := item.Quantity.Float() * item.Rate.Float()
		m.AddRow(7,
			cellCol(4, item.Description, align.Left),
			cellCol(1, formatQty(item.Quantity.Float()), align.Right),
			cellCol(1, formatMoney(item.Rate.Float()), align.Right),
			cellCol(1, formatMoney(amount), align.Right),
			cellCol(1, formatQty(item.TaxPercent.Float()), align.Right),
			cellCol(1, formatQty(item.GSTPercent.Float()), align.Right),
			cellCol(1, formatQty(item.VATPercent.Float()), align.Right),
			cellCol(1, formatMoney(item.Discount.Float()), align.Right),
			cellCol(1, formatMoney(ledger.ComputeLineTotal(item)), align.Right),
		)
	}

	// Totals block. The stored grand total is authoritative; for invoices
	// saved with items it equals the recomputed sum.
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Grand Total", props.Text{Size: 11, Style: fontstyle.Bold}),
		text.NewCol(2, formatMoney(invoice.GrandTotal), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)
	if invoice.PaymentStatus != domain.PaymentStatusPaid {
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, "Amount Paid", props.Text{Size: 10}),
			text.NewCol(2, formatMoney(invoice.AmountPaid), props.Text{Size: 10, Align: align.Right}),
		)
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, "Amount Remaining", props.Text{Size: 10}),
			text.NewCol(2, formatMoney(invoice.AmountRemaining), props.Text{Size: 10, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf.Render: %w", err)
	}
	return doc.GetBytes(), nil
}

func partyCol(size int, label, name string, p domain.Party) core.Col {
	c := col.New(size)
	c.Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 10}))
	top := 5.0
	lines := partyLines(name, p)
	for _, line := range lines {
		c.Add(text.New(line, props.Text{Top: top, Size: 9}))
		top += 4
	}
	return c
}

// partyLines flattens a contact block into display lines, skipping blanks.
func partyLines(name string, p domain.Party) []string {
	display := name
	if display == "" {
		display = p.BusinessName
	}
	candidates := []string{
		display,
		p.Name,
		p.Address,
		joinNonEmpty(", ", p.City, p.State, p.PostalCode),
		p.Country,
		p.GSTIN,
		p.Email,
		p.Phone,
	}
	var lines []string
	for _, s := range candidates {
		if s != "" && (len(lines) == 0 || lines[len(lines)-1] != s) {
			lines = append(lines, s)
		}
	}
	return lines
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func headerCol(size int, label string, a align.Type) core.Col {
	return text.NewCol(size, label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a})
}

func cellCol(size int, value string, a align.Type) core.Col {
	return text.NewCol(size, value, props.Text{Size: 8, Align: a})
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatQty(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// FormatPaymentStatus returns the display label for a status. Unknown values
// (legacy rows predate the current status set) degrade to a readable form
// instead of erroring.
func FormatPaymentStatus(status domain.PaymentStatus) string {
	if label, ok := domain.ValidPaymentStatuses[status]; ok {
		return label
	}
	words := strings.Split(strings.ReplaceAll(string(status), "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
