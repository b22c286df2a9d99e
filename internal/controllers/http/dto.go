package http

import (
	"github.com/vuminhhoangg/E-Store-sub000/internal/order"
	"github.com/vuminhhoangg/E-Store-sub000/internal/user"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

type createProductRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Image                string  `json:"image"`
	Brand                string  `json:"brand"`
	Category             string  `json:"category"`
	Description          string  `json:"description"`
	Price                float64 `json:"price" binding:"required"`
	CountInStock         int     `json:"count_in_stock"`
	WarrantyPeriodMonths int     `json:"warranty_period_months"`
}

type updateProductRequest struct {
	Name                 *string  `json:"name"`
	Image                *string  `json:"image"`
	Brand                *string  `json:"brand"`
	Category             *string  `json:"category"`
	Description          *string  `json:"description"`
	Price                *float64 `json:"price"`
	CountInStock         *int     `json:"count_in_stock"`
	WarrantyPeriodMonths *int     `json:"warranty_period_months"`
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type updateCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type shippingAddressRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city" binding:"required"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
}

type checkoutRequest struct {
	ShippingAddress shippingAddressRequest `json:"shipping_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	Notes           string                 `json:"notes"`
}

func (r shippingAddressRequest) toModel() order.ShippingAddress {
	return order.ShippingAddress{
		FullName: r.FullName,
		Address:  r.Address,
		City:     r.City,
		District: r.District,
		Ward:     r.Ward,
		Phone:    r.Phone,
		Email:    r.Email,
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type payOrderRequest struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	UpdateTime    string `json:"update_time"`
	PayerEmail    string `json:"payer_email"`
}

type createClaimRequest struct {
	OrderID     uint     `json:"order_id" binding:"required"`
	ProductID   uint     `json:"product_id" binding:"required"`
	Description string   `json:"description" binding:"required"`
	ImageURLs   []string `json:"image_urls"`
	Contact     struct {
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
		Email   string `json:"email"`
		Address string `json:"address"`
	} `json:"contact" binding:"required"`
}

type updateClaimStatusRequest struct {
	Status     string   `json:"status" binding:"required"`
	Note       string   `json:"note"`
	AdminNotes *string  `json:"admin_notes"`
	RepairCost *float64 `json:"repair_cost"`
	IsPaid     *bool    `json:"is_paid"`
}
