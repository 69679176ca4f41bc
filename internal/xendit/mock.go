package xendit

// MockClient is a mock implementation of the InvoiceClient interface.
type MockClient struct {
	CreateInvoiceFunc func(req *CreateInvoiceRequest) (*Invoice, error)
	GetInvoiceFunc    func(invoiceID string) (*Invoice, error)

	CreateInvoiceCalls []*CreateInvoiceRequest
	GetInvoiceCalls    []string
}

// NewMockClient creates a new mock invoice client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CreateInvoice(req *CreateInvoiceRequest) (*Invoice, error) {
	m.CreateInvoiceCalls = append(m.CreateInvoiceCalls, req)
	if m.CreateInvoiceFunc != nil {
		return m.CreateInvoiceFunc(req)
	}
	return &Invoice{ID: "inv-mock", ExternalID: req.ExternalID, Status: "PENDING", Amount: req.Amount, InvoiceURL: "https://invoice.test/inv-mock"}, nil
}

func (m *MockClient) GetInvoice(invoiceID string) (*Invoice, error) {
	m.GetInvoiceCalls = append(m.GetInvoiceCalls, invoiceID)
	if m.GetInvoiceFunc != nil {
		return m.GetInvoiceFunc(invoiceID)
	}
	return &Invoice{ID: invoiceID, Status: "PENDING"}, nil
}
