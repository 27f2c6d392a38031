package utils

import (
	"log"
	"sync"
	"testing"

	"tickertizer/src/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database. The pool is pinned to a single
// connection so concurrent callers serialize instead of hitting sqlite
// locking errors.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening test database", err)
	}
	inner, err := d.DB()
	if err != nil {
		log.Fatalf("Error accessing inner db instance: %s", err.Error())
	}
	inner.SetMaxOpenConns(1)
	if err := d.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Ticket{},
		&models.Transaction{},
		&models.Registration{},
		&models.FormQuestion{},
		&models.FormAnswer{},
	); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	return d
}

func seedTicket(t *testing.T, d *gorm.DB, quantity uint, price float64) *models.Ticket {
	t.Helper()
	event := models.Event{Token: GenerateEventToken(), Name: "Launch Night"}
	if err := d.Create(&event).Error; err != nil {
		t.Fatalf("error seeding event: %s", err.Error())
	}
	ticket := models.Ticket{EventID: event.ID, Name: "General", Price: price, Quantity: quantity}
	if err := d.Create(&ticket).Error; err != nil {
		t.Fatalf("error seeding ticket: %s", err.Error())
	}
	return &ticket
}

func TestReserveTicket(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 2, 150)

	assert.NoError(t, ReserveTicket(d, ticket.ID))
	assert.NoError(t, ReserveTicket(d, ticket.ID))
	assert.ErrorIs(t, ReserveTicket(d, ticket.ID), ErrInsufficientInventory)

	var got models.Ticket
	d.First(&got, ticket.ID)
	assert.Equal(t, uint(2), got.NumSold)
}

func TestReserveTicketNotFound(t *testing.T) {
	d := newTestDB(t)

	assert.ErrorIs(t, ReserveTicket(d, 999), ErrTicketNotFound)
}

func TestReserveTicketLastUnitRace(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 1, 150)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ReserveTicket(d, ticket.ID)
		}()
	}
	wg.Wait()
	close(results)

	var ok, soldOut int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case err == ErrInsufficientInventory:
			soldOut++
		default:
			t.Fatalf("unexpected error: %s", err.Error())
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, soldOut)

	var got models.Ticket
	d.First(&got, ticket.ID)
	assert.Equal(t, uint(1), got.NumSold)
}

func TestReserveTicketNeverOversells(t *testing.T) {
	d := newTestDB(t)
	ticket := seedTicket(t, d, 5, 150)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ReserveTicket(d, ticket.ID)
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientInventory)
		}
	}
	assert.Equal(t, 5, ok)

	var got models.Ticket
	d.First(&got, ticket.ID)
	assert.Equal(t, uint(5), got.NumSold)
	assert.LessOrEqual(t, got.NumSold, got.Quantity)
}
