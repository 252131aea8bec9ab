package dto

import "time"

// GameDTO is the wire shape of a game.
type GameDTO struct {
	GameGuid    string    `json:"GameGuid,omitempty"`
	Title       string    `json:"Title" validate:"required,max=100"`
	Description string    `json:"Description"`
	Tags        string    `json:"Tags"`
	Price       float64   `json:"Price" validate:"gte=0"`
	Published   time.Time `json:"Published"`
}

// OrderDTO is the wire shape of an order. OrderGuid, UserGuid, Price and
// CreatedDate are filled on the way out and ignored on the way in.
type OrderDTO struct {
	OrderGuid   string     `json:"OrderGuid,omitempty"`
	UserGuid    string     `json:"UserGuid,omitempty"`
	CartGuid    string     `json:"CartGuid"`
	ReadCart    bool       `json:"ReadCart"`
	Price       float64    `json:"Price"`
	CreatedDate *time.Time `json:"CreatedDate,omitempty"`
	Games       []GameDTO  `json:"Games"`
}

// CollectionDTO is the wire shape of a cart or a library.
type CollectionDTO struct {
	Guid  string    `json:"Guid"`
	Games []GameDTO `json:"Games"`
}

// UserDTO is the wire shape of a user profile. It never carries the password hash.
type UserDTO struct {
	UserGuid    string         `json:"UserGuid"`
	Username    string         `json:"Username"`
	Email       string         `json:"Email"`
	Balance     float64        `json:"Balance"`
	CreatedDate time.Time      `json:"CreatedDate"`
	Roles       []string       `json:"Roles"`
	Cart        *CollectionDTO `json:"Cart,omitempty"`
	Library     *CollectionDTO `json:"Library,omitempty"`
	Orders      []OrderDTO     `json:"Orders,omitempty"`
}

// CredentialsDTO is the body of the token endpoints.
type CredentialsDTO struct {
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"Password" validate:"required"`
}

// RegisterDTO is the body of the registration endpoint.
type RegisterDTO struct {
	Username string `json:"Username" validate:"required,min=3,max=50"`
	Email    string `json:"Email" validate:"required,email,max=255"`
	Password string `json:"Password" validate:"required,min=6,max=72"`
}
