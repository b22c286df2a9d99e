package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/product"
	"github.com/vuminhhoangg/E-Store-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

const productCacheTTL = 30 * time.Second

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) ListProducts(c *gin.Context) {
	var params product.ListParams
	if page, err := strconv.ParseInt(c.Query("page"), 10, 32); err == nil {
		params.Page = int32(page)
	}
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 32); err == nil {
		params.Limit = int32(limit)
	}
	if search := c.Query("search"); search != "" {
		params.Filter.Search = &search
	}
	if category := c.Query("category"); category != "" {
		params.Filter.Category = &category
	}
	if brand := c.Query("brand"); brand != "" {
		params.Filter.Brand = &brand
	}

	products, total, err := h.products.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": total})
}

// GetProduct serves product detail with a short Redis cache in front of the
// database.
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cacheKey := "products:" + c.Param("id")

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var p product.Product
			if json.Unmarshal([]byte(cached), &p) == nil {
				c.JSON(http.StatusOK, &p)
				return
			}
		}
	}

	p, err := h.products.GetByID(ctx, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(p); err == nil {
			h.rdb.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := utils.GetUserIDFromContext(c.Request.Context())
	p, err := h.products.Create(c.Request.Context(), product.CreateParams{
		Name:                 req.Name,
		Image:                req.Image,
		Brand:                req.Brand,
		Category:             req.Category,
		Description:          req.Description,
		Price:                req.Price,
		CountInStock:         req.CountInStock,
		WarrantyPeriodMonths: req.WarrantyPeriodMonths,
		ActorID:              actorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := utils.GetUserIDFromContext(c.Request.Context())
	err := h.products.Update(c.Request.Context(), product.UpdateParams{
		ProductID:            productID,
		Name:                 req.Name,
		Image:                req.Image,
		Brand:                req.Brand,
		Category:             req.Category,
		Description:          req.Description,
		Price:                req.Price,
		CountInStock:         req.CountInStock,
		WarrantyPeriodMonths: req.WarrantyPeriodMonths,
		ActorID:              actorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateProductCache(c, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	h.invalidateProductCache(c, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) invalidateProductCache(c *gin.Context, id string) {
	if h.rdb != nil {
		h.rdb.Del(c.Request.Context(), "products:"+id)
	}
}
