package xendit

// CreateInvoiceRequest describes an invoice to issue. ExternalID carries our
// transaction ID so the webhook can find its way back to the wallet.
type CreateInvoiceRequest struct {
	ExternalID      string  `json:"external_id"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	PayerEmail      string  `json:"payer_email,omitempty"`
	SuccessRedirect string  `json:"success_redirect_url,omitempty"`
	FailureRedirect string  `json:"failure_redirect_url,omitempty"`
}

// Invoice is the provider's view of an issued invoice.
type Invoice struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	InvoiceURL string  `json:"invoice_url"`
	ExpiryDate string  `json:"expiry_date"`
}
