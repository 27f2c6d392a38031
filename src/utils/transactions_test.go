package utils

import (
	"testing"
	"time"

	"tickertizer/src/models"
	"tickertizer/src/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransactionLifecycle(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 10, 250)

	txnID, err := CreateTransaction(d, ticket.ID, ticket.EventID, ticket.Price, "Asha", "asha@example.com", "9876543210")
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, txnID)

	var txn models.Transaction
	d.First(&txn, "id = ?", txnID)
	assert.Equal(t, types.TRANSACTION_INCOMPLETE, txn.Status)
	assert.Nil(t, txn.OrderID)

	assert.NoError(t, AttachOrder(d, txnID, "order_abc"))
	assert.ErrorIs(t, AttachOrder(d, txnID, "order_xyz"), ErrOrderAttached)

	gotID, transitioned, err := CompleteTransaction(d, "order_abc", "pay_1")
	assert.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, txnID, gotID)

	d.First(&txn, "id = ?", txnID)
	assert.Equal(t, types.TRANSACTION_SUCCESS, txn.Status)
	assert.Equal(t, "pay_1", *txn.GatewayPaymentID)

	// Repeated completion is a no-op.
	gotID, transitioned, err = CompleteTransaction(d, "order_abc", "pay_2")
	assert.NoError(t, err)
	assert.False(t, transitioned)
	assert.Equal(t, txnID, gotID)

	d.First(&txn, "id = ?", txnID)
	assert.Equal(t, "pay_1", *txn.GatewayPaymentID)
}

func TestCompleteTransactionUnknownOrder(t *testing.T) {
	d := newTestDB(t)

	_, _, err := CompleteTransaction(d, "order_missing", "pay_1")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestAttachOrderUnknownTransaction(t *testing.T) {
	d := newTestDB(t)

	assert.ErrorIs(t, AttachOrder(d, uuid.New(), "order_abc"), ErrTransactionNotFound)
}

func TestFailTransactionLeavesTerminalAlone(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 10, 250)

	txnID, err := CreateTransaction(d, ticket.ID, ticket.EventID, ticket.Price, "Asha", "asha@example.com", "")
	assert.NoError(t, err)
	assert.NoError(t, AttachOrder(d, txnID, "order_abc"))

	_, _, err = CompleteTransaction(d, "order_abc", "pay_1")
	assert.NoError(t, err)

	assert.NoError(t, FailTransaction(d, "order_abc"))

	var txn models.Transaction
	d.First(&txn, "id = ?", txnID)
	assert.Equal(t, types.TRANSACTION_SUCCESS, txn.Status)
}

func TestFailTransactionMarksIncomplete(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 10, 250)

	txnID, err := CreateTransaction(d, ticket.ID, ticket.EventID, ticket.Price, "Asha", "asha@example.com", "")
	assert.NoError(t, err)
	assert.NoError(t, AttachOrder(d, txnID, "order_abc"))

	assert.NoError(t, FailTransaction(d, "order_abc"))

	var txn models.Transaction
	d.First(&txn, "id = ?", txnID)
	assert.Equal(t, types.TRANSACTION_FAILED, txn.Status)
}

func TestExpireStaleTransactions(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 10, 250)

	staleID, err := CreateTransaction(d, ticket.ID, ticket.EventID, ticket.Price, "Asha", "asha@example.com", "")
	assert.NoError(t, err)
	freshID, err := CreateTransaction(d, ticket.ID, ticket.EventID, ticket.Price, "Ravi", "ravi@example.com", "")
	assert.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	assert.NoError(t, d.
		Model(&models.Transaction{}).
		Where("id = ?", staleID).
		UpdateColumn("created_at", stale).
		Error)

	ExpireStaleTransactions(d, 24*time.Hour)

	var txn models.Transaction
	d.First(&txn, "id = ?", staleID)
	assert.Equal(t, types.TRANSACTION_FAILED, txn.Status)
	txn = models.Transaction{}
	d.First(&txn, "id = ?", freshID)
	assert.Equal(t, types.TRANSACTION_INCOMPLETE, txn.Status)
}
