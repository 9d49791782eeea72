package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"keyforge/internal/application/payment/usecases"
	"keyforge/internal/domain/payment"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/logger"
	"keyforge/internal/shared/utils"
)

// webhookSignatureHeader is the header the gateway signs deliveries with.
const webhookSignatureHeader = "X-Razorpay-Signature"

type PaymentHandler struct {
	createOrderUC    *usecases.CreateOrderUseCase
	verifyUC         *usecases.VerifyPaymentUseCase
	webhookUC        *usecases.HandleWebhookUseCase
	refundUC         *usecases.RefundPaymentUseCase
	listUC           *usecases.ListPaymentsUseCase
	getUC            *usecases.GetPaymentUseCase
	analyticsUC      *usecases.PaymentAnalyticsUseCase
	pricingUC        *usecases.GetPricingUseCase
	validateCouponUC *usecases.ValidateCouponUseCase
	cancelUC         *usecases.CancelSubscriptionUseCase
	logger           logger.Interface
}

func NewPaymentHandler(
	createOrderUC *usecases.CreateOrderUseCase,
	verifyUC *usecases.VerifyPaymentUseCase,
	webhookUC *usecases.HandleWebhookUseCase,
	refundUC *usecases.RefundPaymentUseCase,
	listUC *usecases.ListPaymentsUseCase,
	getUC *usecases.GetPaymentUseCase,
	analyticsUC *usecases.PaymentAnalyticsUseCase,
	pricingUC *usecases.GetPricingUseCase,
	validateCouponUC *usecases.ValidateCouponUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		createOrderUC:    createOrderUC,
		verifyUC:         verifyUC,
		webhookUC:        webhookUC,
		refundUC:         refundUC,
		listUC:           listUC,
		getUC:            getUC,
		analyticsUC:      analyticsUC,
		pricingUC:        pricingUC,
		validateCouponUC: validateCouponUC,
		cancelUC:         cancelUC,
		logger:           logger.NewLogger(),
	}
}

type CreateOrderRequest struct {
	Coupon string `json:"coupon"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type RefundPaymentRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason" binding:"max=255"`
}

type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createOrderUC.Execute(c.Request.Context(), usecases.CreateOrderCommand{
		UserID: userID,
		Coupon: req.Coupon,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "order created")
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	userID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.verifyUC.Execute(c.Request.Context(), usecases.VerifyPaymentCommand{
		UserID:           userID,
		GatewayOrderID:   req.RazorpayOrderID,
		GatewayPaymentID: req.RazorpayPaymentID,
		Signature:        req.RazorpaySignature,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment verified", gin.H{
		"payment": toPaymentResponse(result.Payment),
		"plan":    result.Plan,
	})
}

// Webhook handles gateway deliveries. It reads the raw body because the
// signature covers the exact bytes sent, and it answers 200 for every
// delivery the use case acknowledges so the gateway stops retrying.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	err = h.webhookUC.Execute(c.Request.Context(), usecases.HandleWebhookCommand{
		Body:      body,
		Signature: c.GetHeader(webhookSignatureHeader),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ok", nil)
}

func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	userID, paymentID, err := h.ownerAndPaymentID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RefundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	refunded, err := h.refundUC.Execute(c.Request.Context(), usecases.RefundPaymentCommand{
		UserID:    userID,
		PaymentID: paymentID,
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "refund issued", toPaymentResponse(refunded))
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, pageSize, err := utils.ParsePagination(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ListPaymentsCommand{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := payment.Status(statusStr)
		if !status.IsValid() {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		cmd.Status = &status
	}

	result, err := h.listUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toPaymentResponses(result.Payments), result.Total, result.Page, result.PageSize)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	userID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	paymentID, err := utils.ParseIDParam(c, "paymentId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), userID, paymentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toPaymentResponse(p))
}

func (h *PaymentHandler) GetAnalytics(c *gin.Context) {
	userID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	analytics, err := h.analyticsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", analytics)
}

func (h *PaymentHandler) GetPricing(c *gin.Context) {
	result, err := h.pricingUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *PaymentHandler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.validateCouponUC.Execute(c.Request.Context(), usecases.ValidateCouponCommand{
		Code: req.Code,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "coupon is valid", result)
}

func (h *PaymentHandler) CancelSubscription(c *gin.Context) {
	userID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	downgraded, err := h.cancelUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "subscription cancelled", gin.H{
		"plan":   downgraded.Plan(),
		"limits": downgraded.Plan().Limits(),
	})
}

func (h *PaymentHandler) ownerAndPaymentID(c *gin.Context) (userID, paymentID uint, err error) {
	userID, err = utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		return 0, 0, err
	}
	paymentID, err = utils.ParseIDParam(c, "paymentId")
	if err != nil {
		return 0, 0, err
	}
	return userID, paymentID, nil
}
