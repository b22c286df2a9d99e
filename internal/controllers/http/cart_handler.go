package http

import (
	"net/http"

	"github.com/vuminhhoangg/E-Store-sub000/internal/cart"
	"github.com/vuminhhoangg/E-Store-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	userCart, err := h.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userCart)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	item, err := h.carts.AddToCart(c.Request.Context(), cart.AddParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	err := h.carts.UpdateQuantity(c.Request.Context(), cart.UpdateParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := paramID(c, "productId")
	if !ok {
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	err := h.carts.RemoveFromCart(c.Request.Context(), cart.RemoveParams{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (h *Handler) ClearCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	if err := h.carts.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
