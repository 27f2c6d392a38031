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
)

// publicEventRoutes serves the attendee-facing event pages, addressed by the
// opaque event token so numeric ids never appear in shared links.
func publicEventRoutes(router *gin.Engine) {
	router.
		GET("/event/:token", func(ctx *gin.Context) {
			var params types.EventTokenURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			event, err := utils.GetEventByToken(db.GetDb(), params.Token, "Tickets", "FormQuestions")
			if err != nil {
				if errors.Is(err, utils.ErrEventNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"event": event})
		}).
		GET("/event/:token/tickets", func(ctx *gin.Context) {
			var params types.EventTokenURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			event, err := utils.GetEventByToken(db.GetDb(), params.Token, "Tickets")
			if err != nil {
				if errors.Is(err, utils.ErrEventNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"tickets": event.Tickets})
		})
}

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			event, err := utils.CreateNewEvent(db.GetDb(), &body, userId)
			if err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"event": event})
		}).
		GET("/events", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var events []models.Event
			db := db.GetDb()
			if err := db.
				Where("created_by = ?", userId).
				Order("time_start asc").
				Find(&events).
				Error; err != nil {
				log.Printf("Error listing events: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"events": events})
		}).
		GET("/events/:token", func(ctx *gin.Context) {
			var params types.EventTokenURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var event models.Event
			if err := db.
				Preload("Tickets").
				Preload("FormQuestions").
				Where("token = ? AND created_by = ?", params.Token, userId).
				First(&event).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"event": event})
		}).
		PUT("/events/:token", func(ctx *gin.Context) {
			var params types.EventTokenURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			columns, err := utils.EventUpdateColumns(&body)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if len(columns) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			userId := ctx.GetUint("id")
			res := db.GetDb().
				Model(&models.Event{}).
				Where("token = ? AND created_by = ?", params.Token, userId).
				Updates(columns)
			if res.Error != nil {
				log.Printf("Error updating event: %s\n", res.Error.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			if res.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/events/:token", func(ctx *gin.Context) {
			var params types.EventTokenURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			res := db.GetDb().
				Where("token = ? AND created_by = ?", params.Token, userId).
				Delete(&models.Event{})
			if res.Error != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			if res.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
