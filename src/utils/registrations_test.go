package utils

import (
	"fmt"
	"testing"

	"tickertizer/src/lib"
	"tickertizer/src/models"
	"tickertizer/src/types"

	"github.com/stretchr/testify/assert"
)

type fakeGateway struct {
	orders int
	fail   bool
}

func (g *fakeGateway) CreateRemoteOrder(amount int64, currency string, receipt string) (string, error) {
	if g.fail {
		return "", fmt.Errorf("%w: connection refused", lib.ErrGateway)
	}
	g.orders++
	return fmt.Sprintf("order_fake_%d", g.orders), nil
}

func TestInitiatePurchase(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 10, 250)
	gateway := &fakeGateway{}

	body := types.CreateOrderRequestBody{TicketID: ticket.ID, Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}
	txnID, orderID, amount, err := InitiatePurchase(d, gateway, &body)
	assert.NoError(t, err)
	assert.Equal(t, "order_fake_1", orderID)
	assert.Equal(t, 250.0, amount)

	var txn models.Transaction
	d.First(&txn, "id = ?", txnID)
	assert.Equal(t, types.TRANSACTION_INCOMPLETE, txn.Status)
	assert.Equal(t, "order_fake_1", *txn.OrderID)
	assert.Equal(t, "Asha", txn.BuyerName)

	// No inventory is touched at order time.
	var got models.Ticket
	d.First(&got, ticket.ID)
	assert.Equal(t, uint(0), got.NumSold)
}

func TestInitiatePurchaseUnknownTicket(t *testing.T) {
	d := newTestDB(t)
	gateway := &fakeGateway{}

	body := types.CreateOrderRequestBody{TicketID: 999, Name: "Asha", Email: "asha@example.com"}
	_, _, _, err := InitiatePurchase(d, gateway, &body)
	assert.ErrorIs(t, err, ErrTicketNotFound)
	assert.Equal(t, 0, gateway.orders)
}

func TestInitiatePurchaseGatewayFailure(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 10, 250)
	gateway := &fakeGateway{fail: true}

	body := types.CreateOrderRequestBody{TicketID: ticket.ID, Name: "Asha", Email: "asha@example.com"}
	_, _, _, err := InitiatePurchase(d, gateway, &body)
	assert.ErrorIs(t, err, lib.ErrGateway)

	// The transaction stays incomplete with no order attached; the expiry
	// sweep reaps it later.
	var txn models.Transaction
	d.First(&txn)
	assert.Equal(t, types.TRANSACTION_INCOMPLETE, txn.Status)
	assert.Nil(t, txn.OrderID)
}

func TestFinalizePurchaseConfirms(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 2, 250)
	gateway := &fakeGateway{}

	body := types.CreateOrderRequestBody{TicketID: ticket.ID, Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}
	txnID, orderID, _, err := InitiatePurchase(d, gateway, &body)
	assert.NoError(t, err)

	outcome, gotID, err := FinalizePurchase(d, orderID, "pay_1")
	assert.NoError(t, err)
	assert.Equal(t, PURCHASE_CONFIRMED, outcome)
	assert.Equal(t, txnID, gotID)

	var txn models.Transaction
	d.First(&txn, "id = ?", txnID)
	assert.Equal(t, types.TRANSACTION_SUCCESS, txn.Status)
	assert.Equal(t, "pay_1", *txn.GatewayPaymentID)

	var got models.Ticket
	d.First(&got, ticket.ID)
	assert.Equal(t, uint(1), got.NumSold)

	var regs []models.Registration
	d.Find(&regs)
	assert.Len(t, regs, 1)
	assert.Equal(t, "Asha", regs[0].Name)
	assert.Equal(t, ticket.ID, *regs[0].TicketID)
}

func TestFinalizePurchaseIdempotent(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 2, 250)
	gateway := &fakeGateway{}

	body := types.CreateOrderRequestBody{TicketID: ticket.ID, Name: "Asha", Email: "asha@example.com"}
	_, orderID, _, err := InitiatePurchase(d, gateway, &body)
	assert.NoError(t, err)

	outcome, _, err := FinalizePurchase(d, orderID, "pay_1")
	assert.NoError(t, err)
	assert.Equal(t, PURCHASE_CONFIRMED, outcome)

	// A replayed callback confirms without reserving a second unit.
	outcome, _, err = FinalizePurchase(d, orderID, "pay_1")
	assert.NoError(t, err)
	assert.Equal(t, PURCHASE_ALREADY_CONFIRMED, outcome)

	var got models.Ticket
	d.First(&got, ticket.ID)
	assert.Equal(t, uint(1), got.NumSold)

	var regs []models.Registration
	d.Find(&regs)
	assert.Len(t, regs, 1)
}

func TestFinalizePurchaseSoldOut(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 1, 250)
	gateway := &fakeGateway{}

	var reconciled []string
	SetReconcileHook(func(txn *models.Transaction) {
		reconciled = append(reconciled, *txn.GatewayPaymentID)
	})
	defer SetReconcileHook(func(txn *models.Transaction) {})

	first := types.CreateOrderRequestBody{TicketID: ticket.ID, Name: "Asha", Email: "asha@example.com"}
	_, firstOrder, _, err := InitiatePurchase(d, gateway, &first)
	assert.NoError(t, err)
	second := types.CreateOrderRequestBody{TicketID: ticket.ID, Name: "Ravi", Email: "ravi@example.com"}
	secondID, secondOrder, _, err := InitiatePurchase(d, gateway, &second)
	assert.NoError(t, err)

	outcome, _, err := FinalizePurchase(d, firstOrder, "pay_1")
	assert.NoError(t, err)
	assert.Equal(t, PURCHASE_CONFIRMED, outcome)

	// The second payment settled after the last unit was taken.
	outcome, gotID, err := FinalizePurchase(d, secondOrder, "pay_2")
	assert.NoError(t, err)
	assert.Equal(t, PURCHASE_SOLD_OUT, outcome)
	assert.Equal(t, secondID, gotID)
	assert.Equal(t, []string{"pay_2"}, reconciled)

	var txn models.Transaction
	d.First(&txn, "id = ?", secondID)
	assert.Equal(t, types.TRANSACTION_FAILED, txn.Status)

	var got models.Ticket
	d.First(&got, ticket.ID)
	assert.Equal(t, uint(1), got.NumSold)

	var regs []models.Registration
	d.Find(&regs)
	assert.Len(t, regs, 1)
	assert.Equal(t, "Asha", regs[0].Name)
}

func TestFinalizePurchaseRejectedWhenFailed(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 2, 250)
	gateway := &fakeGateway{}

	body := types.CreateOrderRequestBody{TicketID: ticket.ID, Name: "Asha", Email: "asha@example.com"}
	_, orderID, _, err := InitiatePurchase(d, gateway, &body)
	assert.NoError(t, err)
	assert.NoError(t, FailTransaction(d, orderID))

	outcome, _, err := FinalizePurchase(d, orderID, "pay_1")
	assert.NoError(t, err)
	assert.Equal(t, PURCHASE_REJECTED, outcome)

	var got models.Ticket
	d.First(&got, ticket.ID)
	assert.Equal(t, uint(0), got.NumSold)
}

func TestFinalizePurchaseUnknownOrder(t *testing.T) {
	d := newTestDB(t)

	_, _, err := FinalizePurchase(d, "order_missing", "pay_1")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestGetTransactionSummary(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 2, 250)
	gateway := &fakeGateway{}

	body := types.CreateOrderRequestBody{TicketID: ticket.ID, Name: "Asha", Email: "asha@example.com"}
	txnID, orderID, _, err := InitiatePurchase(d, gateway, &body)
	assert.NoError(t, err)
	_, _, err = FinalizePurchase(d, orderID, "pay_1")
	assert.NoError(t, err)

	summary, err := GetTransactionSummary(d, txnID)
	assert.NoError(t, err)
	assert.Equal(t, "Launch Night", summary.EventName)
	assert.Equal(t, "General", summary.TicketName)
	assert.Equal(t, 250.0, summary.Amount)
	assert.Equal(t, "success", summary.Status)
}
