package xendit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xnd "github.com/xendit/xendit-go"
)

func TestCreateParams(t *testing.T) {
	params := createParams(&CreateInvoiceRequest{
		ExternalID:      "txn-1",
		Amount:          50,
		Description:     "Wallet top-up",
		PayerEmail:      "aisha@example.com",
		SuccessRedirect: "https://app.test/wallet",
	})

	assert.Equal(t, "txn-1", params.ExternalID)
	assert.Equal(t, 50.0, params.Amount)
	assert.Equal(t, "Wallet top-up", params.Description)
	assert.Equal(t, "aisha@example.com", params.PayerEmail)
	assert.Equal(t, "https://app.test/wallet", params.SuccessRedirectURL)
	assert.Empty(t, params.FailureRedirectURL)
}

func TestFromProvider(t *testing.T) {
	expiry := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	inv := fromProvider(&xnd.Invoice{
		ID:         "inv-123",
		ExternalID: "txn-1",
		Status:     "PENDING",
		Amount:     50,
		InvoiceURL: "https://checkout.test/inv-123",
		ExpiryDate: &expiry,
	})

	require.NotNil(t, inv)
	assert.Equal(t, "inv-123", inv.ID)
	assert.Equal(t, "txn-1", inv.ExternalID)
	assert.Equal(t, "PENDING", inv.Status)
	assert.Equal(t, "https://checkout.test/inv-123", inv.InvoiceURL)
	assert.Equal(t, "2026-08-30T18:00:00Z", inv.ExpiryDate)
}

func TestFromProviderWithoutExpiry(t *testing.T) {
	inv := fromProvider(&xnd.Invoice{ID: "inv-123", Status: "PAID"})
	assert.Empty(t, inv.ExpiryDate)
}
