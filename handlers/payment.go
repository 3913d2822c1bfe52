package handlers

import (
	"net/http"
	"time"

	"tourhub/middleware"
	"tourhub/models"
	"tourhub/services/cascade"
	"tourhub/services/payment"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler creates payment intents and records completed payments.
type PaymentHandler struct {
	Gateway payment.Gateway
	Cascade cascade.Coordinator
}

func NewPaymentHandler(gateway payment.Gateway, coordinator cascade.Coordinator) *PaymentHandler {
	return &PaymentHandler{Gateway: gateway, Cascade: coordinator}
}

type paymentIntentRequest struct {
	Amount float64 `json:"amount"`
}

// paymentRequest is posted by the frontend after the card is charged.
type paymentRequest struct {
	BookingID     string `json:"bookingId"`
	TransactionID string `json:"transactionId"`
	CustomerEmail string `json:"customerEmail"`
}

type bookingPaymentRequest struct {
	TransactionID string               `json:"transactionId"`
	Status        models.BookingStatus `json:"status"`
	PaidAt        *time.Time           `json:"paidAt"`
	Amount        *float64             `json:"amount"`
	Method        string               `json:"method"`
	CustomerEmail *string              `json:"customerEmail"`
}

func (h *PaymentHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var req paymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	secret, err := h.Gateway.CreateIntent(c.Request.Context(), req.Amount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// RecordPaymentHandler completes a payment and promotes the payer to tourist.
func (h *PaymentHandler) RecordPaymentHandler(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	result, err := h.Cascade.CompletePayment(c.Request.Context(), models.PaymentCompletion{
		BookingID:     req.BookingID,
		TransactionID: req.TransactionID,
		PayerEmail:    req.CustomerEmail,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// PatchBookingPaymentHandler records a payment with its details. The payer
// defaults to the signed-in caller.
func (h *PaymentHandler) PatchBookingPaymentHandler(c *gin.Context) {
	var req bookingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	method := req.Method
	if method == "" {
		method = "card"
	}
	payer := middleware.CallerEmail(c)
	if req.CustomerEmail != nil && *req.CustomerEmail != "" {
		payer = *req.CustomerEmail
	}
	result, err := h.Cascade.CompletePayment(c.Request.Context(), models.PaymentCompletion{
		BookingID:     c.Param("id"),
		TransactionID: req.TransactionID,
		PayerEmail:    payer,
		Status:        req.Status,
		PaidAt:        req.PaidAt,
		Info: &models.PaymentInfo{
			Amount:        req.Amount,
			Method:        method,
			CustomerEmail: req.CustomerEmail,
		},
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
