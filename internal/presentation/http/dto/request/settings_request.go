package request

// UpdateSettingsRequest updates tenant pricing settings. Changes apply to
// sessions opened after the update.
type UpdateSettingsRequest struct {
	Currency             *string  `json:"currency" binding:"omitempty,min=2,max=10"`
	TaxRate              *float64 `json:"tax_rate" binding:"omitempty,min=0,max=100"`
	VATEnabled           *bool    `json:"vat_enabled"`
	DefaultPaymentMethod *string  `json:"default_payment_method" binding:"omitempty,oneof=cash card transfer qr"`
	SurchargeEnabled     *bool    `json:"surcharge_enabled"`
	ReceiptHeader        *string  `json:"receipt_header" binding:"omitempty,max=255"`
	ReceiptFooter        *string  `json:"receipt_footer" binding:"omitempty,max=255"`
}
