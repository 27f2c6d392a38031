package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"tickertizer/src/config"
	"tickertizer/src/db"
	"tickertizer/src/lib"
	"tickertizer/src/models"
	"tickertizer/src/types"
	"tickertizer/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const transactionCacheTTL = time.Minute

func paymentFailedURL(txnID string) string {
	if txnID == "" {
		return fmt.Sprintf("%s/payment-failed", config.FrontendHost())
	}
	return fmt.Sprintf("%s/%s/payment-failed", config.FrontendHost(), txnID)
}

func paymentSuccessURL(txnID string) string {
	return fmt.Sprintf("%s/%s/payment-success", config.FrontendHost(), txnID)
}

// transactionIDForOrder resolves the public transaction id for redirects.
// Empty string when the order is unknown.
func transactionIDForOrder(orderID string) string {
	var txn models.Transaction
	if err := db.GetDb().Where("order_id = ?", orderID).First(&txn).Error; err != nil {
		return ""
	}
	return txn.ID.String()
}

func paymentRoutes(router *gin.Engine) {
	router.
		POST("/create_order", func(ctx *gin.Context) {
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			txnID, orderID, amount, err := utils.InitiatePurchase(db.GetDb(), lib.GetGateway(), &body)
			if err != nil {
				if errors.Is(err, utils.ErrTicketNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				if errors.Is(err, lib.ErrGateway) {
					ctx.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
					return
				}
				log.Printf("Error initiating purchase: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"order_id":       orderID,
				"transaction_id": txnID.String(),
				"amount":         amount,
				"currency":       "INR",
				"key_id":         config.RazorpayKeyID(),
			})
		}).
		POST("/payment_callback", func(ctx *gin.Context) {
			var body types.PaymentCallbackRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.Redirect(http.StatusFound, paymentFailedURL(""))
				return
			}
			db := db.GetDb()
			if !lib.VerifyCallbackSignature(body.RazorpayOrderID, body.RazorpayPaymentID, body.RazorpaySignature, config.RazorpayKeySecret()) {
				log.Printf("Invalid payment signature for order %s\n", body.RazorpayOrderID)
				if err := utils.FailTransaction(db, body.RazorpayOrderID); err != nil {
					log.Printf("Error failing transaction: %s\n", err.Error())
				}
				ctx.Redirect(http.StatusFound, paymentFailedURL(transactionIDForOrder(body.RazorpayOrderID)))
				return
			}
			outcome, txnID, err := utils.FinalizePurchase(db, body.RazorpayOrderID, body.RazorpayPaymentID)
			if err != nil {
				if !errors.Is(err, utils.ErrTransactionNotFound) {
					log.Printf("Error finalizing purchase: %s\n", err.Error())
				}
				ctx.Redirect(http.StatusFound, paymentFailedURL(""))
				return
			}
			switch outcome {
			case utils.PURCHASE_CONFIRMED, utils.PURCHASE_ALREADY_CONFIRMED:
				ctx.Redirect(http.StatusFound, paymentSuccessURL(txnID.String()))
			default:
				ctx.Redirect(http.StatusFound, paymentFailedURL(txnID.String()))
			}
		}).
		GET("/transaction/:id", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			cacheKey := fmt.Sprintf("txn:%s", params.ID)
			rdb := lib.GetRedisClient()
			if rdb != nil {
				if cached, err := rdb.Get(context.Background(), cacheKey).Result(); err == nil {
					var summary types.TransactionSummary
					if err := json.Unmarshal([]byte(cached), &summary); err == nil {
						ctx.JSON(http.StatusOK, summary)
						return
					}
				}
			}
			txnID := uuid.MustParse(params.ID)
			summary, err := utils.GetTransactionSummary(db.GetDb(), txnID)
			if err != nil {
				if errors.Is(err, utils.ErrTransactionNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.Status(http.StatusInternalServerError)
				return
			}
			if rdb != nil {
				if payload, err := json.Marshal(summary); err == nil {
					if err := rdb.Set(context.Background(), cacheKey, payload, transactionCacheTTL).Err(); err != nil {
						log.Printf("Error caching transaction summary: %s\n", err.Error())
					}
				}
			}
			ctx.JSON(http.StatusOK, summary)
		})
}
