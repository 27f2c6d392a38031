package utils

import (
	"errors"
	"log"
	"time"

	"tickertizer/src/models"
	"tickertizer/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrOrderAttached       = errors.New("transaction already has an order")
)

// CreateTransaction opens a new purchase attempt in the incomplete state.
// No gateway order exists yet; AttachOrder links one later.
func CreateTransaction(db *gorm.DB, ticketID, eventID uint, amount float64, buyerName, buyerEmail, buyerPhone string) (uuid.UUID, error) {
	txn := models.Transaction{
		ID:         uuid.New(),
		TicketID:   ticketID,
		EventID:    eventID,
		Amount:     amount,
		Status:     types.TRANSACTION_INCOMPLETE,
		BuyerName:  buyerName,
		BuyerEmail: buyerEmail,
		BuyerPhone: buyerPhone,
	}
	if err := db.Create(&txn).Error; err != nil {
		log.Printf("[txn] Error creating transaction: %s\n", err.Error())
		return uuid.Nil, err
	}
	return txn.ID, nil
}

// AttachOrder links a gateway order to a transaction exactly once. The order
// id is write-once; a second attach fails with ErrOrderAttached.
func AttachOrder(db *gorm.DB, txnID uuid.UUID, orderID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("id = ?", txnID).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if txn.OrderID != nil {
			return ErrOrderAttached
		}
		return tx.
			Model(&models.Transaction{}).
			Where("id = ?", txnID).
			Update("order_id", orderID).
			Error
	})
}

// CompleteTransaction moves the transaction for orderID to success and records
// the gateway payment id, but only from the incomplete state. The guarded
// UPDATE makes a repeated callback a no-op: transitioned reports whether this
// call performed the transition.
func CompleteTransaction(tx *gorm.DB, orderID string, paymentID string) (uuid.UUID, bool, error) {
	var txn models.Transaction
	if err := tx.Where("order_id = ?", orderID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, ErrTransactionNotFound
		}
		return uuid.Nil, false, err
	}
	res := tx.
		Model(&models.Transaction{}).
		Where("order_id = ? AND status = ?", orderID, types.TRANSACTION_INCOMPLETE).
		Updates(map[string]any{
			"status":             types.TRANSACTION_SUCCESS,
			"gateway_payment_id": paymentID,
		})
	if res.Error != nil {
		return txn.ID, false, res.Error
	}
	return txn.ID, res.RowsAffected > 0, nil
}

// FailTransaction marks the transaction for orderID as failed. Terminal rows
// are left untouched, so a late failure notice can never clobber a success.
func FailTransaction(db *gorm.DB, orderID string) error {
	return db.
		Model(&models.Transaction{}).
		Where("order_id = ? AND status = ?", orderID, types.TRANSACTION_INCOMPLETE).
		Update("status", types.TRANSACTION_FAILED).
		Error
}

// ExpireStaleTransactions fails incomplete transactions older than olderThan
// that never saw a payment. Runs from the scheduler; abandoned checkouts
// would otherwise sit in the incomplete state forever.
func ExpireStaleTransactions(db *gorm.DB, olderThan time.Duration) {
	cutoff := time.Now().Add(-olderThan)
	res := db.
		Model(&models.Transaction{}).
		Where("status = ? AND gateway_payment_id IS NULL AND created_at < ?", types.TRANSACTION_INCOMPLETE, cutoff).
		Update("status", types.TRANSACTION_FAILED)
	if res.Error != nil {
		log.Printf("[txn] Error expiring stale transactions: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[txn] Expired %d stale transactions\n", res.RowsAffected)
	}
}
