package xendit

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	xnd "github.com/xendit/xendit-go"
	"github.com/xendit/xendit-go/client"
	"github.com/xendit/xendit-go/invoice"
)

// APIClient wraps the provider SDK behind the InvoiceClient interface.
type APIClient struct {
	api *client.API
}

// NewClient creates a new Xendit client authenticated with the secret key.
func NewClient(secretKey string) *APIClient {
	return &APIClient{
		api: client.New(secretKey),
	}
}

// Ensure APIClient implements the InvoiceClient interface.
var _ InvoiceClient = (*APIClient)(nil)

// CreateInvoice issues a new invoice for a pending top-up.
func (c *APIClient) CreateInvoice(req *CreateInvoiceRequest) (*Invoice, error) {
	log.Debug("Creating invoice", "externalID", req.ExternalID, "amount", req.Amount)
	inv, xerr := c.api.Invoice.Create(createParams(req))
	if xerr != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", xerr)
	}
	out := fromProvider(inv)
	log.Info("Invoice created", "invoiceID", out.ID, "externalID", out.ExternalID, "status", out.Status)
	return out, nil
}

// GetInvoice fetches an invoice by its provider ID.
func (c *APIClient) GetInvoice(invoiceID string) (*Invoice, error) {
	inv, xerr := c.api.Invoice.Get(&invoice.GetParams{ID: invoiceID})
	if xerr != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", xerr)
	}
	return fromProvider(inv), nil
}

// createParams maps our request onto the SDK's parameter struct.
func createParams(req *CreateInvoiceRequest) *invoice.CreateParams {
	return &invoice.CreateParams{
		ExternalID:         req.ExternalID,
		Amount:             req.Amount,
		Description:        req.Description,
		PayerEmail:         req.PayerEmail,
		SuccessRedirectURL: req.SuccessRedirect,
		FailureRedirectURL: req.FailureRedirect,
	}
}

// fromProvider converts the SDK's invoice into our view of it.
func fromProvider(inv *xnd.Invoice) *Invoice {
	out := &Invoice{
		ID:         inv.ID,
		ExternalID: inv.ExternalID,
		Status:     inv.Status,
		Amount:     inv.Amount,
		InvoiceURL: inv.InvoiceURL,
	}
	if inv.ExpiryDate != nil {
		out.ExpiryDate = inv.ExpiryDate.Format(time.RFC3339)
	}
	return out
}
