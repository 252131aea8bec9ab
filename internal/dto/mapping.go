package dto

import "vapor/internal/models"

// ToGame maps a wire game onto an entity. An empty GameGuid lets the
// persistence layer assign one.
func ToGame(d GameDTO) models.Game {
	return models.Game{
		ID:          d.GameGuid,
		Title:       d.Title,
		Description: d.Description,
		Tags:        d.Tags,
		Price:       d.Price,
		Published:   d.Published,
	}
}

func FromGame(g models.Game) GameDTO {
	return GameDTO{
		GameGuid:    g.ID,
		Title:       g.Title,
		Description: g.Description,
		Tags:        g.Tags,
		Price:       g.Price,
		Published:   g.Published,
	}
}

func FromGames(games []models.Game) []GameDTO {
	out := make([]GameDTO, 0, len(games))
	for _, g := range games {
		out = append(out, FromGame(g))
	}
	return out
}

// ToOrder maps the client-supplied fields of an order. The owner, identity,
// price and timestamps are never taken from the wire.
func ToOrder(d OrderDTO) models.Order {
	games := make([]models.Game, 0, len(d.Games))
	for _, g := range d.Games {
		games = append(games, ToGame(g))
	}
	return models.Order{
		CartID: d.CartGuid,
		Games:  games,
	}
}

// FromOrder is the reverse of ToOrder. ReadCart is a request-only flag and is always false.
func FromOrder(o models.Order) OrderDTO {
	created := o.CreatedAt
	return OrderDTO{
		OrderGuid:   o.ID,
		UserGuid:    o.UserID,
		CartGuid:    o.CartID,
		Price:       o.Price,
		CreatedDate: &created,
		Games:       FromGames(o.Games),
	}
}

func FromOrders(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func fromCart(c *models.Cart) *CollectionDTO {
	if c == nil {
		return nil
	}
	return &CollectionDTO{Guid: c.ID, Games: FromGames(c.Games)}
}

func fromLibrary(l *models.Library) *CollectionDTO {
	if l == nil {
		return nil
	}
	return &CollectionDTO{Guid: l.ID, Games: FromGames(l.Games)}
}

// FromUser maps a user with whatever relations were loaded.
func FromUser(u models.User) UserDTO {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	var orders []OrderDTO
	if len(u.Orders) > 0 {
		orders = FromOrders(u.Orders)
	}
	return UserDTO{
		UserGuid:    u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Balance:     u.Balance,
		CreatedDate: u.CreatedAt,
		Roles:       roles,
		Cart:        fromCart(u.Cart),
		Library:     fromLibrary(u.Library),
		Orders:      orders,
	}
}

// FromCart maps a cart on its own.
func FromCart(c models.Cart) CollectionDTO {
	return *fromCart(&c)
}
