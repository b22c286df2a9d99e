package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/order"
	"github.com/vuminhhoangg/E-Store-sub000/internal/payment"
	"github.com/vuminhhoangg/E-Store-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	o, err := h.orders.Checkout(c.Request.Context(), order.CheckoutParams{
		UserID:          userID,
		ShippingAddress: req.ShippingAddress.toModel(),
		PaymentMethod:   payment.Method(req.PaymentMethod),
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func orderListParams(c *gin.Context) order.ListParams {
	var params order.ListParams
	if page, err := strconv.ParseInt(c.Query("page"), 10, 32); err == nil {
		params.Page = int32(page)
	}
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 32); err == nil {
		params.Limit = int32(limit)
	}
	if status := c.Query("status"); status != "" {
		s := order.Status(status)
		params.Filter.Status = &s
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		params.Filter.DateFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		params.Filter.DateTo = &to
	}
	return params
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	orders, err := h.orders.ListMine(c.Request.Context(), userID, orderListParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), orderListParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	o, err := h.orders.GetByID(ctx, orderID, userID, utils.IsAdminFromContext(ctx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := utils.GetUserIDFromContext(c.Request.Context())
	o, err := h.orders.UpdateStatus(c.Request.Context(), orderID, order.Status(req.Status), actorID, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// ActivateWarranty starts warranty coverage for every eligible item on the
// buyer's own order.
func (h *Handler) ActivateWarranty(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	// Ownership check runs first so strangers cannot activate or probe.
	if _, err := h.orders.GetByID(ctx, orderID, userID, utils.IsAdminFromContext(ctx)); err != nil {
		respondError(c, err)
		return
	}

	o, err := h.orders.ActivateWarranty(ctx, orderID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) PayOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req payOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	if _, err := h.orders.GetByID(ctx, orderID, userID, utils.IsAdminFromContext(ctx)); err != nil {
		respondError(c, err)
		return
	}

	o, err := h.orders.MarkPaid(ctx, orderID, payment.Result{
		TransactionID: req.TransactionID,
		Status:        req.Status,
		UpdateTime:    req.UpdateTime,
		PayerEmail:    req.PayerEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
