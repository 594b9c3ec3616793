package entities

type CheckoutItem struct {
	ProductID string
	Size      string
	Quantity  int
}

type CheckoutRequest struct {
	Identity       Identity
	Customer       Customer
	Shipping       Address
	ShippingMethod ShippingMethod
	PaymentRef     string
	Items          []CheckoutItem
	IdempotencyKey string
}

// ContactEmail is where the confirmation goes: explicit customer email first, then the account email.
func (r CheckoutRequest) ContactEmail() string {
	if r.Customer.Email != "" {
		return r.Customer.Email
	}
	return r.Identity.Email
}

type CheckoutResult struct {
	Order    Order
	Replayed bool
}

const TopicOrderConfirmation = "order.confirmation"

// OrderConfirmation is the payload carried from checkout to the notifier through the outbox.
type OrderConfirmation struct {
	EventID      string                  `json:"event_id" validate:"required"`
	OrderID      string                  `json:"order_id" validate:"required"`
	Email        string                  `json:"email"`
	Name         string                  `json:"name"`
	Items        []ConfirmationLine      `json:"items" validate:"required,min=1,dive"`
	Subtotal     string                  `json:"subtotal" validate:"required"`
	Tax          string                  `json:"tax" validate:"required"`
	ShippingCost string                  `json:"shipping_cost" validate:"required"`
	Total        string                  `json:"total" validate:"required"`
	Shipping     ConfirmationShipAddress `json:"shipping"`
}

type ConfirmationLine struct {
	Name      string `json:"name" validate:"required"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type ConfirmationShipAddress struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type OutboxMessage struct {
	ID      int64
	EventID string
	Topic   string
	Key     string
	Payload []byte
}
