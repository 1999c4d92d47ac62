package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/printer"
	"github.com/google/uuid"
)

// ReceiptService renders committed bills as ESC/POS receipts and sends them
// to the configured printer.
type ReceiptService struct {
	printer     printer.Printer
	billRepo    repository.BillRepository
	tenantRepo  repository.TenantRepository
	printerType string
	width       int
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	p printer.Printer,
	billRepo repository.BillRepository,
	tenantRepo repository.TenantRepository,
	printerType string,
	width int,
) *ReceiptService {
	if width <= 0 {
		width = 32
	}
	return &ReceiptService{
		printer:     p,
		billRepo:    billRepo,
		tenantRepo:  tenantRepo,
		printerType: printerType,
		width:       width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Receipt is the renderable projection of a bill. It is returned to the
// caller as JSON alongside the print attempt so disconnected terminals can
// still show the receipt on screen.
type Receipt struct {
	StoreName  string        `json:"store_name"`
	Header     string        `json:"header,omitempty"`
	Footer     string        `json:"footer,omitempty"`
	BillNumber string        `json:"bill_number"`
	Date       string        `json:"date"`
	Cashier    string        `json:"cashier,omitempty"`
	Payment    string        `json:"payment"`
	Voided     bool          `json:"voided"`
	Items      []ReceiptItem `json:"items"`
	Subtotal   float64       `json:"subtotal"`
	Discount   float64       `json:"discount"`
	Surcharge  float64       `json:"surcharge"`
	Tax        float64       `json:"tax"`
	TaxRate    float64       `json:"tax_rate"`
	Total      float64       `json:"total"`
	Received   float64       `json:"received"`
	Change     float64       `json:"change"`
}

// ReceiptItem is one printed line.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// PrintBillReceipt fetches a bill and prints its receipt. The rendered
// receipt is returned even when printing fails so the terminal can fall back
// to on-screen display.
func (s *ReceiptService) PrintBillReceipt(ctx context.Context, billID uuid.UUID) (*Receipt, error) {
	bill, err := s.billRepo.GetWithItems(ctx, billID)
	if err != nil {
		return nil, err
	}

	receipt := s.buildReceipt(ctx, bill)

	data := s.render(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (bill %s): %v", billID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

func (s *ReceiptService) buildReceipt(ctx context.Context, bill *entity.Bill) *Receipt {
	receipt := &Receipt{
		StoreName:  "Cannabis POS",
		BillNumber: bill.BillNumber,
		Date:       bill.CreatedAt.Format("2006-01-02 15:04"),
		Cashier:    bill.User.Name,
		Payment:    bill.PaymentMethod.String(),
		Voided:     bill.Status == enum.BillStatusVoided,
		Subtotal:   float64(bill.Subtotal) / 100,
		Discount:   float64(bill.DiscountAmount) / 100,
		Surcharge:  float64(bill.SurchargeAmount) / 100,
		Tax:        float64(bill.TaxAmount) / 100,
		TaxRate:    bill.TaxRate,
		Total:      float64(bill.TotalAmount) / 100,
		Received:   float64(bill.AmountReceived) / 100,
		Change:     float64(bill.ChangeAmount) / 100,
	}

	if tenant, err := s.tenantRepo.GetByID(ctx, bill.TenantID); err == nil {
		receipt.StoreName = tenant.Name
		receipt.Header = tenant.Settings.ReceiptHeader
		receipt.Footer = tenant.Settings.ReceiptFooter
	}

	for _, item := range bill.Items {
		receipt.Items = append(receipt.Items, ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
		})
	}
	return receipt
}

// render converts a Receipt into ESC/POS bytes.
func (s *ReceiptService) render(r *Receipt) []byte {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header != "" {
		doc.Text(r.Header)
	}
	if r.Voided {
		doc.SetBold(true).Text("*** VOIDED ***").SetBold(false)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill:", r.BillNumber).
		KeyValue("Date:", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	doc.KeyValue("Payment:", r.Payment)

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.Subtotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", r.Discount))
	}
	if r.Surcharge > 0 {
		doc.KeyValue("Surcharge:", fmt.Sprintf("%.2f", r.Surcharge))
	}
	if r.Tax > 0 {
		doc.KeyValue(fmt.Sprintf("VAT %.0f%%:", r.TaxRate), fmt.Sprintf("%.2f", r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	doc.KeyValue("Received:", fmt.Sprintf("%.2f", r.Received))
	if r.Change > 0 {
		doc.KeyValue("Change:", fmt.Sprintf("%.2f", r.Change))
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	} else {
		doc.Text("Thank you!")
	}
	doc.SetAlign(printer.AlignLeft)

	if r.Payment == "cash" && !r.Voided {
		doc.OpenDrawer()
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
