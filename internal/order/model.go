package order

import (
	"time"

	"pawmart-web/internal/product"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "Card"
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCashOnDelivery
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// Status is the fulfillment status staff move an order through.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// DeliveryDetails is where an order ships. The validate tags are the
// checkout form rules: every field required, postal code 5 digits, phone 10.
type DeliveryDetails struct {
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required,digits=5"`
	Phone      string `json:"phone" validate:"required,digits=10"`
}

// Complete reports whether all five fields are non-blank.
func (d DeliveryDetails) Complete() bool {
	return d.Name != "" && d.Address != "" && d.City != "" && d.PostalCode != "" && d.Phone != ""
}

type Item struct {
	Product   *product.Product `json:"product,omitempty"`
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
}

type Order struct {
	ID              string          `json:"_id"`
	Items           []Item          `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Status          Status          `json:"status"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// DirectBuySelection is the single product a "buy now" action parked on the
// server for this session. It is never merged with the cart.
type DirectBuySelection struct {
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

func (d DirectBuySelection) Total() decimal.Decimal {
	return d.Product.LineTotal(d.Quantity)
}

// PlaceOrderRequest is the payload both finalize endpoints accept.
type PlaceOrderRequest struct {
	Items           []Item          `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Status          Status          `json:"status"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
}
