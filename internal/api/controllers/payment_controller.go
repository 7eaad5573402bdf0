package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"yogafunnel/internal/models/request_models"
	"yogafunnel/internal/services"
	"yogafunnel/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreateCheckout godoc
// @Summary Create a payment link for the chosen plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutRequest true "Checkout request"
// @Success 200 {object} response_models.CreateCheckoutResponse
// @Router /checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	var request request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := p.paymentService.CreateCheckout(c.Request.Context(), request.SessionID, request.PlanCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout URL created successfully")
}

func (p *PaymentController) HandleWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Error().Err(err).Msg("read webhook body")
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := p.paymentService.HandleWebhook(c.Request.Context(), rawBody); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Webhook processed")
}
