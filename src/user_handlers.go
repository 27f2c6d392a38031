package main

import (
	"log"
	"net/http"

	"tickertizer/src/db"
	"tickertizer/src/models"
	"tickertizer/src/types"
	"tickertizer/src/utils"

	"github.com/gin-gonic/gin"
)

func authRoutes(router *gin.Engine) {
	router.
		POST("/signup", func(ctx *gin.Context) {
			var body types.SignupRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var existing int64
			db.Model(&models.User{}).Where("email = ?", body.Email).Count(&existing)
			if existing > 0 {
				ctx.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			hash, err := utils.HashPassword(body.Password)
			if err != nil {
				log.Printf("Error hashing password: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			user := models.User{
				Name:         body.Name,
				Email:        body.Email,
				Phone:        body.Phone,
				Address:      body.Address,
				PasswordHash: hash,
				ProfilePic:   body.ProfilePic,
			}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("Error creating user: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": user.FormattedID()})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var user models.User
			db.Model(&models.User{}).Where("email = ?", body.Email).Find(&user)
			if user.ID < 1 || !utils.CheckPassword(user.PasswordHash, body.Password) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			token, err := utils.GenerateAccessToken(&user)
			if err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"token": token, "id": user.FormattedID()})
		})
}
