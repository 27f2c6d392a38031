package utils

import (
	"errors"
	"log"

	"tickertizer/src/config"
	"tickertizer/src/lib"
	"tickertizer/src/models"
	"tickertizer/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseOutcome is the result of settling a payment callback.
type PurchaseOutcome string

const (
	PURCHASE_CONFIRMED         PurchaseOutcome = "confirmed"
	PURCHASE_ALREADY_CONFIRMED PurchaseOutcome = "already_confirmed"
	PURCHASE_SOLD_OUT          PurchaseOutcome = "sold_out"
	PURCHASE_REJECTED          PurchaseOutcome = "rejected"
)

// ReconcileFunc is invoked when a payment settled but the seat was gone. The
// default implementation only logs; deployments needing automatic refunds
// swap in their own via SetReconcileHook.
type ReconcileFunc func(txn *models.Transaction)

var reconcileHook ReconcileFunc = func(txn *models.Transaction) {
	log.Printf("[purchase] Payment %s captured for sold-out ticket %d (txn %s). Manual reconciliation required\n", *txn.GatewayPaymentID, txn.TicketID, txn.ID)
}

func SetReconcileHook(hook ReconcileFunc) {
	reconcileHook = hook
}

// InitiatePurchase opens a transaction for one unit of the ticket and creates
// the matching gateway order. Inventory is not touched here; availability is
// only decided when the payment settles. When the gateway call fails the
// transaction is left incomplete for the expiry job to reap.
func InitiatePurchase(db *gorm.DB, gateway lib.Gateway, body *types.CreateOrderRequestBody) (uuid.UUID, string, float64, error) {
	var ticket models.Ticket
	if err := db.Where("id = ?", body.TicketID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, "", 0, ErrTicketNotFound
		}
		return uuid.Nil, "", 0, err
	}
	txnID, err := CreateTransaction(db, ticket.ID, ticket.EventID, ticket.Price, body.Name, body.Email, body.Phone)
	if err != nil {
		return uuid.Nil, "", 0, err
	}
	amount := int64(ticket.Price * 100)
	orderID, err := gateway.CreateRemoteOrder(amount, "INR", txnID.String())
	if err != nil {
		return uuid.Nil, "", 0, err
	}
	if err := AttachOrder(db, txnID, orderID); err != nil {
		return uuid.Nil, "", 0, err
	}
	return txnID, orderID, ticket.Price, nil
}

// FinalizePurchase settles a verified payment callback. Completing the
// transaction, reserving inventory and inserting the Registration row happen
// in one storage transaction, so a failed reservation rolls all three back
// and no partial state survives.
//
// Outcomes: PURCHASE_CONFIRMED on the first successful settlement,
// PURCHASE_ALREADY_CONFIRMED on a repeated callback (no second reservation),
// PURCHASE_SOLD_OUT when the payment settled but no inventory remained (the
// transaction is failed and the reconcile hook fires), PURCHASE_REJECTED when
// the transaction was already failed.
func FinalizePurchase(db *gorm.DB, orderID string, paymentID string) (PurchaseOutcome, uuid.UUID, error) {
	var outcome PurchaseOutcome
	var txnID uuid.UUID
	err := db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("order_id = ?", orderID).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		txnID = txn.ID
		switch txn.Status {
		case types.TRANSACTION_SUCCESS:
			outcome = PURCHASE_ALREADY_CONFIRMED
			return nil
		case types.TRANSACTION_FAILED:
			outcome = PURCHASE_REJECTED
			return nil
		}
		_, transitioned, err := CompleteTransaction(tx, orderID, paymentID)
		if err != nil {
			return err
		}
		if !transitioned {
			outcome = PURCHASE_ALREADY_CONFIRMED
			return nil
		}
		if err := ReserveTicket(tx, txn.TicketID); err != nil {
			return err
		}
		reg := models.Registration{
			TicketID: &txn.TicketID,
			Name:     txn.BuyerName,
			Email:    txn.BuyerEmail,
			Phone:    txn.BuyerPhone,
		}
		if err := tx.Create(&reg).Error; err != nil {
			return err
		}
		outcome = PURCHASE_CONFIRMED
		return nil
	})
	if errors.Is(err, ErrInsufficientInventory) {
		// The settlement rolled back, so the row is incomplete again; fail it
		// and hand the captured payment to the reconcile hook.
		if ferr := FailTransaction(db, orderID); ferr != nil {
			return "", txnID, ferr
		}
		var txn models.Transaction
		if ferr := db.Where("order_id = ?", orderID).First(&txn).Error; ferr == nil {
			pid := paymentID
			if txn.GatewayPaymentID == nil {
				txn.GatewayPaymentID = &pid
			}
			reconcileHook(&txn)
		}
		return PURCHASE_SOLD_OUT, txnID, nil
	}
	if err != nil {
		return "", txnID, err
	}
	return outcome, txnID, nil
}

// GetTransactionSummary builds the public view of a transaction for the
// post-payment status page.
func GetTransactionSummary(db *gorm.DB, txnID uuid.UUID) (*types.TransactionSummary, error) {
	var txn models.Transaction
	if err := db.
		Preload("Ticket").
		Preload("Event").
		Where("id = ?", txnID).
		First(&txn).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	summary := types.TransactionSummary{
		Amount: txn.Amount,
		Status: string(txn.Status),
	}
	if txn.Event != nil {
		summary.EventName = txn.Event.Name
		summary.EventDate = txn.Event.TimeStart.Format(config.EVENT_DATE_FORMAT)
	}
	if txn.Ticket != nil {
		summary.TicketName = txn.Ticket.Name
	}
	return &summary, nil
}
