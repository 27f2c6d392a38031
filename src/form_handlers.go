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

// publicFormRoutes accepts attendee answers; attendees have no account.
func publicFormRoutes(router *gin.Engine) {
	router.
		POST("/form_answers", func(ctx *gin.Context) {
			var body types.CreateFormAnswerRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var question models.FormQuestion
			if err := db.Where("id = ?", body.QuestionID).First(&question).Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			answer := models.FormAnswer{
				QuestionID: body.QuestionID,
				Answer:     body.Answer,
			}
			if err := db.Create(&answer).Error; err != nil {
				log.Printf("Error saving answer: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"answer": answer})
		})
}

// ownedQuestion resolves a form question only when the caller owns its event.
func ownedQuestion(tx *gorm.DB, questionID, userId uint) (*models.FormQuestion, error) {
	var question models.FormQuestion
	if err := tx.
		Joins("JOIN events ON events.id = form_questions.event_id").
		Where("form_questions.id = ? AND events.created_by = ?", questionID, userId).
		First(&question).
		Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func formHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events/:token/form_questions", func(ctx *gin.Context) {
			var params types.EventTokenURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateFormQuestionRequestBody
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
			question := models.FormQuestion{
				EventID:      event.ID,
				QuestionType: body.QuestionType,
				Question:     body.Question,
				Options:      body.Options,
			}
			if err := db.Create(&question).Error; err != nil {
				log.Printf("Error creating question: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"question": question})
		}).
		GET("/events/:token/form_questions", func(ctx *gin.Context) {
			var params types.EventTokenURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var event models.Event
			if err := db.
				Preload("FormQuestions.Answers").
				Where("token = ? AND created_by = ?", params.Token, userId).
				First(&event).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"form_questions": event.FormQuestions})
		}).
		PUT("/form_questions/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateFormQuestionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			columns := utils.FormQuestionUpdateColumns(&body)
			if len(columns) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				question, err := ownedQuestion(tx, params.ID, userId)
				if err != nil {
					return err
				}
				return tx.
					Model(&models.FormQuestion{}).
					Where("id = ?", question.ID).
					Updates(columns).
					Error
			}); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/form_questions/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				question, err := ownedQuestion(tx, params.ID, userId)
				if err != nil {
					return err
				}
				if err := tx.Where("question_id = ?", question.ID).Delete(&models.FormAnswer{}).Error; err != nil {
					return err
				}
				return tx.Delete(&models.FormQuestion{}, question.ID).Error
			}); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/form_answers/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateFormAnswerRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			res := db.GetDb().
				Model(&models.FormAnswer{}).
				Where("id = ?", params.ID).
				Update("answer", body.Answer)
			if res.Error != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			if res.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/form_answers/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			res := db.GetDb().Delete(&models.FormAnswer{}, params.ID)
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
