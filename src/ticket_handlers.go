package main

import (
	"errors"
	"log"
	"net/http"

	"tickertizer/src/db"
	"tickertizer/src/models"
	"tickertizer/src/types"
	"tickertizer/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ownedTicket resolves a ticket only when the caller owns its event.
func ownedTicket(tx *gorm.DB, ticketID, userId uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := tx.
		Joins("JOIN events ON events.id = tickets.event_id").
		Where("tickets.id = ? AND events.created_by = ?", ticketID, userId).
		First(&ticket).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func ticketHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events/:token/tickets", func(ctx *gin.Context) {
			var params types.EventTokenURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var event models.Event
			if err := db.
				Where("token = ? AND created_by = ?", params.Token, userId).
				First(&event).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ticket := models.Ticket{
				EventID:  event.ID,
				Name:     body.Name,
				Price:    body.Price,
				Quantity: body.Quantity,
			}
			if err := db.Create(&ticket).Error; err != nil {
				log.Printf("Error creating ticket: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"ticket": ticket})
		}).
		PUT("/tickets/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			columns := utils.TicketUpdateColumns(&body)
			if len(columns) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				ticket, err := ownedTicket(tx, params.ID, userId)
				if err != nil {
					return err
				}
				// Shrinking below units already sold would break the ledger.
				if quantity, ok := columns["quantity"].(uint); ok && quantity < ticket.NumSold {
					return utils.ErrInsufficientInventory
				}
				return tx.
					Model(&models.Ticket{}).
					Where("id = ?", ticket.ID).
					Updates(columns).
					Error
			}); err != nil {
				if errors.Is(err, utils.ErrTicketNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				if errors.Is(err, utils.ErrInsufficientInventory) {
					ctx.JSON(http.StatusConflict, gin.H{"error": "quantity below units sold"})
					return
				}
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/tickets/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				if _, err := ownedTicket(tx, params.ID, userId); err != nil {
					return err
				}
				return utils.DeleteTicket(tx, params.ID)
			}); err != nil {
				if errors.Is(err, utils.ErrTicketNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				if errors.Is(err, utils.ErrTicketHasSales) {
					ctx.JSON(http.StatusConflict, gin.H{"error": "ticket has transactions"})
					return
				}
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
