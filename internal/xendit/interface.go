package xendit

// InvoiceClient defines the interface for interacting with the Xendit invoice
// API. This allows for mock implementations to be used in tests.
type InvoiceClient interface {
	CreateInvoice(req *CreateInvoiceRequest) (*Invoice, error)
	GetInvoice(invoiceID string) (*Invoice, error)
}
