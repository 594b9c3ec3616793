package handler

import (
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
)

// Customer контактные данные покупателя, обязательны для гостевого заказа
type Customer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

// Address адрес доставки
type Address struct {
	FullName   string `json:"fullName" validate:"required"`
	Phone      string `json:"phone,omitempty"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// PaymentInfo ссылка на платёж, созданный через /payment/create-intent
type PaymentInfo struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// CartItem позиция корзины
type CartItem struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest тело запроса на оформление заказа
type CreateOrderRequest struct {
	Customer       *Customer   `json:"customer,omitempty"`
	Shipping       Address     `json:"shipping"`
	ShippingMethod string      `json:"shippingMethod,omitempty" validate:"omitempty,oneof=standard express"`
	Payment        PaymentInfo `json:"payment"`
	Items          []CartItem  `json:"items" validate:"required,min=1,dive"`
}

func (r CreateOrderRequest) ToEntity(who entities.Identity, idempotencyKey string) entities.CheckoutRequest {
	req := entities.CheckoutRequest{
		Identity:       who,
		Shipping:       AddressJSONToEntity(r.Shipping),
		ShippingMethod: entities.ShippingMethod(r.ShippingMethod),
		PaymentRef:     r.Payment.PaymentIntentID,
		Items:          CartItemsToEntity(r.Items),
		IdempotencyKey: idempotencyKey,
	}
	if r.Customer != nil {
		req.Customer = entities.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		}
	}
	return req
}

func CartItemsToEntity(items []CartItem) []entities.CheckoutItem {
	result := make([]entities.CheckoutItem, 0, len(items))
	for _, it := range items {
		result = append(result, entities.CheckoutItem{
			ProductID: it.ProductID,
			Size:      it.Size,
			Quantity:  it.Quantity,
		})
	}
	return result
}

func AddressJSONToEntity(a Address) entities.Address {
	return entities.Address{
		FullName:   a.FullName,
		Phone:      a.Phone,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func AddressEntityToJSON(a entities.Address) Address {
	return Address{
		FullName:   a.FullName,
		Phone:      a.Phone,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// OrderItem позиция заказа; цены строками с двумя знаками после запятой
type OrderItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Size        string `json:"size,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price" example:"25.00"`
	LineTotal   string `json:"lineTotal" example:"50.00"`
}

// Payment платёж по заказу
type Payment struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	ExternalRef string `json:"paymentIntentId"`
	Amount      string `json:"amount" example:"60.75"`
	Currency    string `json:"currency" example:"usd"`
	Status      string `json:"status" example:"awaiting"`
}

// Order заказ
type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId,omitempty"`
	Customer       *Customer   `json:"customer,omitempty"`
	Shipping       Address     `json:"shipping"`
	ShippingMethod string      `json:"shippingMethod" example:"standard"`
	Subtotal       string      `json:"subtotal" example:"50.00"`
	Tax            string      `json:"tax" example:"5.75"`
	ShippingCost   string      `json:"shippingCost" example:"5.00"`
	Total          string      `json:"total" example:"60.75"`
	Status         string      `json:"status" example:"pending"`
	PaymentStatus  string      `json:"paymentStatus" example:"awaiting"`
	Carrier        string      `json:"carrier,omitempty"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	ShippedAt      *time.Time  `json:"shippedAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Items          []OrderItem `json:"items"`
	Payment        *Payment    `json:"payment,omitempty"`
}

func OrderEntityToJSON(o entities.Order) Order {
	res := Order{
		ID:             o.ID,
		UserID:         o.UserID,
		Shipping:       AddressEntityToJSON(o.Shipping),
		ShippingMethod: string(o.ShippingMethod),
		Subtotal:       o.Subtotal.StringFixed(2),
		Tax:            o.Tax.StringFixed(2),
		ShippingCost:   o.ShippingCost.StringFixed(2),
		Total:          o.Total.StringFixed(2),
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		Carrier:        o.Carrier,
		TrackingNumber: o.TrackingNumber,
		ShippedAt:      o.ShippedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Items:          make([]OrderItem, 0, len(o.Items)),
	}
	if o.IsGuest() {
		res.Customer = &Customer{Name: o.Customer.Name, Email: o.Customer.Email, Phone: o.Customer.Phone}
	}
	for _, it := range o.Items {
		res.Items = append(res.Items, OrderItem{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			Price:       it.Price.StringFixed(2),
			LineTotal:   it.LineTotal().StringFixed(2),
		})
	}
	if o.Payment.ID != "" {
		res.Payment = &Payment{
			ID:          o.Payment.ID,
			Provider:    o.Payment.Provider,
			ExternalRef: o.Payment.ExternalRef,
			Amount:      o.Payment.Amount.StringFixed(2),
			Currency:    o.Payment.Currency,
			Status:      string(o.Payment.Status),
		}
	}
	return res
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderEntityToJSON(o))
	}
	return res
}

// CreateOrderResponse результат оформления заказа
type CreateOrderResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"orderId"`
	Replayed bool   `json:"replayed,omitempty"`
	Order    Order  `json:"order"`
}

// OrderListResponse страница заказов
type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// UpdateStatusRequest смена статуса заказа
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing confirmed shipped delivered cancelled"`
}

// UpdateShippingRequest данные отправки
type UpdateShippingRequest struct {
	Carrier        string `json:"carrier" validate:"required"`
	TrackingNumber string `json:"trackingNumber" validate:"required"`
}

// CreateIntentRequest корзина для расчёта суммы платежа
type CreateIntentRequest struct {
	Items          []CartItem `json:"items" validate:"required,min=1,dive"`
	ShippingMethod string     `json:"shippingMethod,omitempty" validate:"omitempty,oneof=standard express"`
}

// CreateIntentResponse данные для подтверждения платежа на клиенте
type CreateIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          string `json:"amount" example:"60.75"`
	Currency        string `json:"currency" example:"usd"`
}

// WebhookResponse подтверждение получения события
type WebhookResponse struct {
	Received bool `json:"received"`
}

// ProductSize остаток по размеру
type ProductSize struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Product товар; для товаров с размерами stock это сумма по размерам
type Product struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Price    string        `json:"price" example:"25.00"`
	HasSizes bool          `json:"hasSizes"`
	Stock    int           `json:"stock"`
	Sizes    []ProductSize `json:"sizes,omitempty"`
}

func ProductEntityToJSON(p entities.Product) Product {
	res := Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		HasSizes: p.HasSizes,
		Stock:    p.Stock,
	}
	for _, s := range p.Sizes {
		res.Sizes = append(res.Sizes, ProductSize{Size: s.Size, Stock: s.Stock})
	}
	return res
}

// SetStockRequest абсолютный остаток; size пустой для товаров без размеров
type SetStockRequest struct {
	Size  string `json:"size,omitempty"`
	Stock *int   `json:"stock" validate:"required,gte=0"`
}

// StockErrorResponse ответ при нехватке товара
type StockErrorResponse struct {
	Message   string `json:"message"`
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Requested int    `json:"requested"`
	Available *int   `json:"available,omitempty"`
}
