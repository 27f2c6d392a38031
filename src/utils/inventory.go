package utils

import (
	"errors"
	"tickertizer/src/models"

	"gorm.io/gorm"
)

var (
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrInsufficientInventory = errors.New("ticket is sold out")
)

// ReserveTicket converts one unit of available inventory into a sold unit.
// The check and the increment happen in a single guarded UPDATE so two
// concurrent reservations can never both pass the availability check. Must
// run inside the same storage transaction as the Registration insert; the
// caller rolls back everything when it fails.
func ReserveTicket(tx *gorm.DB, ticketID uint) error {
	res := tx.
		Model(&models.Ticket{}).
		Where("id = ? AND num_sold < quantity", ticketID).
		UpdateColumn("num_sold", gorm.Expr("num_sold + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := tx.
		Model(&models.Ticket{}).
		Where("id = ?", ticketID).
		Count(&count).
		Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTicketNotFound
	}
	return ErrInsufficientInventory
}
