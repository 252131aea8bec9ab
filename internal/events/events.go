package events

import "context"

// Routing keys of the domain events exchanged between the services.
const (
	OrderCreated   = "order.created"
	UserRegistered = "user.registered"
)

// Publisher sends an already encoded event.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Handler processes one delivered event. A non-nil error asks the broker to redeliver.
type Handler func(ctx context.Context, body []byte) error

// Subscriber delivers events for a routing key to a handler until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, routingKey string, handler Handler) error
}

// OrderCreatedEvent is the payload of OrderCreated.
type OrderCreatedEvent struct {
	OrderID string   `json:"order_id"`
	UserID  string   `json:"user_id"`
	GameIDs []string `json:"game_ids"`
	Price   float64  `json:"price"`
}

// UserRegisteredEvent is the payload of UserRegistered.
type UserRegisteredEvent struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
