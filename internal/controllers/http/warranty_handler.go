package http

import (
	"net/http"
	"strconv"

	"github.com/vuminhhoangg/E-Store-sub000/internal/utils"
	"github.com/vuminhhoangg/E-Store-sub000/internal/warranty"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateClaim(c *gin.Context) {
	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	claim, err := h.claims.CreateClaim(c.Request.Context(), warranty.CreateParams{
		UserID:      userID,
		OrderID:     req.OrderID,
		ProductID:   req.ProductID,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		Contact: warranty.Contact{
			Name:    req.Contact.Name,
			Phone:   req.Contact.Phone,
			Email:   req.Contact.Email,
			Address: req.Contact.Address,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, claim)
}

func claimListParams(c *gin.Context) warranty.ListParams {
	var params warranty.ListParams
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		params.Limit = limit
	}
	if status := c.Query("status"); status != "" {
		s := warranty.Status(status)
		params.Filter.Status = &s
	}
	return params
}

func (h *Handler) ListMyClaims(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	claims, err := h.claims.ListMine(c.Request.Context(), userID, claimListParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

func (h *Handler) ListClaims(c *gin.Context) {
	claims, err := h.claims.List(c.Request.Context(), claimListParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

func (h *Handler) GetClaim(c *gin.Context) {
	claimID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)
	claim, err := h.claims.GetByID(ctx, claimID, userID, utils.IsAdminFromContext(ctx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (h *Handler) UpdateClaimStatus(c *gin.Context) {
	claimID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := utils.GetUserIDFromContext(c.Request.Context())
	claim, err := h.claims.UpdateStatus(c.Request.Context(), warranty.UpdateStatusParams{
		ClaimID:    claimID,
		Status:     warranty.Status(req.Status),
		ActorID:    actorID,
		Note:       req.Note,
		AdminNotes: req.AdminNotes,
		RepairCost: req.RepairCost,
		IsPaid:     req.IsPaid,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}
