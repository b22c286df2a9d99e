package http

import (
	"net/http"

	"github.com/vuminhhoangg/E-Store-sub000/internal/payment"

	"github.com/gin-gonic/gin"
)

// PaymentInstructions returns the step-by-step guide for a payment method,
// with optional amount and order number substituted into the steps.
func (h *Handler) PaymentInstructions(c *gin.Context) {
	method := payment.Method(c.Param("method"))
	if !method.Valid() {
		respondError(c, payment.ErrUnknownMethod)
		return
	}

	steps := payment.GetInstructions(method)

	vars := payment.InstructionVars{}
	if amount := c.Query("amount"); amount != "" {
		vars["amount"] = amount
	}
	if orderNumber := c.Query("order_number"); orderNumber != "" {
		vars["order_number"] = orderNumber
	}
	if len(vars) > 0 {
		steps = payment.InjectVariables(steps, vars)
	}

	c.JSON(http.StatusOK, gin.H{
		"method": string(method),
		"steps":  steps,
	})
}
