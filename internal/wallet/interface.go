package wallet

// WalletStore defines the interface for wallet and transaction persistence.
type WalletStore interface {
	CreateTransaction(t *Transaction) error
	SetExternalID(transactionID, externalID string) error
	GetTransaction(transactionID string) (*Transaction, error)
	ListTransactions(userID string) ([]*Transaction, error)
	GetWallet(userID string) (*Wallet, error)
	ProcessInvoiceEvent(ev *InvoiceEvent, now int64) (Result, error)
	Clear()
}
