package wallet

// MockStore is a mock implementation of the WalletStore interface.
type MockStore struct {
	CreateTransactionFunc   func(t *Transaction) error
	SetExternalIDFunc       func(transactionID, externalID string) error
	GetTransactionFunc      func(transactionID string) (*Transaction, error)
	ListTransactionsFunc    func(userID string) ([]*Transaction, error)
	GetWalletFunc           func(userID string) (*Wallet, error)
	ProcessInvoiceEventFunc func(ev *InvoiceEvent, now int64) (Result, error)

	CreateTransactionCalls   []*Transaction
	SetExternalIDCalls       []SetExternalIDCall
	ProcessInvoiceEventCalls []*InvoiceEvent
	ClearCalls               int
}

// SetExternalIDCall records the arguments of a SetExternalID call.
type SetExternalIDCall struct {
	TransactionID string
	ExternalID    string
}

// NewMockStore creates a new mock wallet store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateTransaction(t *Transaction) error {
	m.CreateTransactionCalls = append(m.CreateTransactionCalls, t)
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(t)
	}
	return nil
}

func (m *MockStore) SetExternalID(transactionID, externalID string) error {
	m.SetExternalIDCalls = append(m.SetExternalIDCalls, SetExternalIDCall{TransactionID: transactionID, ExternalID: externalID})
	if m.SetExternalIDFunc != nil {
		return m.SetExternalIDFunc(transactionID, externalID)
	}
	return nil
}

func (m *MockStore) GetTransaction(transactionID string) (*Transaction, error) {
	if m.GetTransactionFunc != nil {
		return m.GetTransactionFunc(transactionID)
	}
	return nil, ErrTransactionNotFound
}

func (m *MockStore) ListTransactions(userID string) ([]*Transaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) GetWallet(userID string) (*Wallet, error) {
	if m.GetWalletFunc != nil {
		return m.GetWalletFunc(userID)
	}
	return &Wallet{UserID: userID}, nil
}

func (m *MockStore) ProcessInvoiceEvent(ev *InvoiceEvent, now int64) (Result, error) {
	m.ProcessInvoiceEventCalls = append(m.ProcessInvoiceEventCalls, ev)
	if m.ProcessInvoiceEventFunc != nil {
		return m.ProcessInvoiceEventFunc(ev, now)
	}
	return ResultCredited, nil
}

func (m *MockStore) Clear() {
	m.ClearCalls++
}
