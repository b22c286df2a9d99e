package http

import (
	"errors"
	"net/http"

	"github.com/vuminhhoangg/E-Store-sub000/internal/cart"
	"github.com/vuminhhoangg/E-Store-sub000/internal/metrics"
	"github.com/vuminhhoangg/E-Store-sub000/internal/middleware"
	"github.com/vuminhhoangg/E-Store-sub000/internal/order"
	"github.com/vuminhhoangg/E-Store-sub000/internal/payment"
	"github.com/vuminhhoangg/E-Store-sub000/internal/product"
	"github.com/vuminhhoangg/E-Store-sub000/internal/user"
	"github.com/vuminhhoangg/E-Store-sub000/internal/warranty"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handler is the HTTP glue over the domain services. All business rules live
// in the services; handlers only bind, dispatch and translate errors.
type Handler struct {
	users    user.Service
	products product.Service
	carts    cart.Service
	orders   order.Service
	claims   warranty.Service
	rdb      *redis.Client
	stats    *metrics.Store
}

func NewHandler(
	users user.Service,
	products product.Service,
	carts cart.Service,
	orders order.Service,
	claims warranty.Service,
	rdb *redis.Client,
	stats *metrics.Store,
) *Handler {
	return &Handler{
		users:    users,
		products: products,
		carts:    carts,
		orders:   orders,
		claims:   claims,
		rdb:      rdb,
		stats:    stats,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, rl *middleware.RateLimiter) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")

	users := api.Group("/users")
	users.POST("/register", rl.Strict(), h.Register)
	users.POST("/login", rl.Strict(), h.Login)
	users.POST("/logout", h.Logout)
	users.GET("/me", middleware.RequireAuth(), h.Me)

	products := api.Group("/products")
	products.GET("", rl.General(), h.ListProducts)
	products.GET("/:id", rl.General(), h.GetProduct)

	carts := api.Group("/cart", middleware.RequireAuth())
	carts.GET("", h.GetCart)
	carts.POST("", h.AddToCart)
	carts.PUT("", h.UpdateCartItem)
	carts.DELETE("/:productId", h.RemoveCartItem)
	carts.DELETE("", h.ClearCart)

	orders := api.Group("/orders", middleware.RequireAuth())
	orders.POST("", h.Checkout)
	orders.GET("/mine", h.ListMyOrders)
	orders.GET("/:id", h.GetOrder)
	orders.POST("/:id/warranty/activate", h.ActivateWarranty)
	orders.PUT("/:id/pay", rl.Strict(), h.PayOrder)

	claims := api.Group("/warranty", middleware.RequireAuth())
	claims.POST("", h.CreateClaim)
	claims.GET("/mine", h.ListMyClaims)
	claims.GET("/:id", h.GetClaim)

	payments := api.Group("/payments")
	payments.GET("/:method/instructions", rl.General(), h.PaymentInstructions)

	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/orders", h.ListOrders)
	admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
	admin.GET("/warranty", h.ListClaims)
	admin.PUT("/warranty/:id/status", h.UpdateClaimStatus)
}

// Health reports liveness plus the counter snapshot.
func (h *Handler) Health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if h.stats != nil {
		resp["metrics"] = h.stats.Snapshot()
	}
	c.JSON(http.StatusOK, resp)
}

// respondError maps domain sentinel errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, warranty.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, warranty.ErrClaimNotFound),
		errors.Is(err, warranty.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, order.ErrStockConflict),
		errors.Is(err, order.ErrAlreadyPaid),
		errors.Is(err, order.ErrAlreadyActivated),
		errors.Is(err, warranty.ErrClaimClosed):
		status = http.StatusConflict
	case errors.Is(err, order.ErrCartEmpty),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, warranty.ErrInvalidStatus),
		errors.Is(err, warranty.ErrOrderNotDelivered),
		errors.Is(err, warranty.ErrWarrantyNotActive),
		errors.Is(err, warranty.ErrDescriptionMissing),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidWarranty),
		errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, payment.ErrUnknownMethod):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
