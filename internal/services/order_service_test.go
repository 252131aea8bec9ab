package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vapor/internal/database/databasetest"
	"vapor/internal/dto"
	"vapor/internal/events"
	"vapor/internal/models"
	"vapor/internal/repositories"
	"vapor/internal/services"
)

type fixture struct {
	db          *gorm.DB
	users       *repositories.GORMUserRepository
	games       *repositories.GORMGameRepository
	orders      *repositories.GORMOrderRepository
	collections *repositories.GORMCollectionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := databasetest.Open(t)
	return &fixture{
		db:          db,
		users:       repositories.NewGORMUserRepository(db),
		games:       repositories.NewGORMGameRepository(db),
		orders:      repositories.NewGORMOrderRepository(db),
		collections: repositories.NewGORMCollectionRepository(db),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", Password: "hash", Cart: &models.Cart{}, Library: &models.Library{}}
	require.NoError(t, f.users.Create(u))
	return u
}

func (f *fixture) game(t *testing.T, title string, price float64) *models.Game {
	t.Helper()
	g := &models.Game{Title: title, Price: price}
	require.NoError(t, f.games.Create(g))
	return g
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newFixture(t)
	mockPub := new(MockPublisher)
	svc := services.NewOrderService(f.orders, f.users, f.games, f.collections, mockPub)
	buyer := f.user(t, "buyer")
	existing := f.game(t, "Existing", 20)

	var published events.OrderCreatedEvent
	mockPub.On("Publish", events.OrderCreated, mock.Anything).Run(func(args mock.Arguments) {
		require.NoError(t, json.Unmarshal(args.Get(1).([]byte), &published))
	}).Return(nil).Once()

	req := dto.OrderDTO{
		CartGuid: *buyer.CartID,
		Games: []dto.GameDTO{
			{Title: "X", Price: 9.99},
			{GameGuid: existing.ID},
			{GameGuid: existing.ID},
		},
	}
	order, err := svc.CreateOrder(buyer.ID, req)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, buyer.ID, order.UserID)
	assert.InDelta(t, 29.99, order.Price, 0.001)
	require.Len(t, order.Games, 2)
	mockPub.AssertExpectations(t)
	assert.Equal(t, order.ID, published.OrderID)
	assert.Equal(t, buyer.ID, published.UserID)
	assert.ElementsMatch(t, []string{order.Games[0].ID, existing.ID}, published.GameIDs)

	fetched, err := svc.GetOrderByID(order.ID)
	require.NoError(t, err)
	out := dto.FromOrder(*fetched)
	assert.Equal(t, req.CartGuid, out.CartGuid)
	titles := []string{}
	for _, g := range out.Games {
		titles = append(titles, g.Title)
	}
	assert.ElementsMatch(t, []string{"X", "Existing"}, titles)
}

func TestOrderService_CreateOrder_ReadCart(t *testing.T) {
	f := newFixture(t)
	svc := services.NewOrderService(f.orders, f.users, f.games, f.collections, nil)
	buyer := f.user(t, "cartbuyer")
	inCart := f.game(t, "In Cart", 15)
	require.NoError(t, f.collections.AddGame(*buyer.CartID, inCart))

	order, err := svc.CreateOrder(buyer.ID, dto.OrderDTO{CartGuid: *buyer.CartID, ReadCart: true})
	require.NoError(t, err)
	require.Len(t, order.Games, 1)
	assert.Equal(t, inCart.ID, order.Games[0].ID)
	assert.Equal(t, 15.0, order.Price)

	cart, err := f.collections.GetByID(*buyer.CartID)
	require.NoError(t, err)
	assert.Empty(t, cart.Games, "checkout empties the cart")

	_, err = svc.CreateOrder(buyer.ID, dto.OrderDTO{CartGuid: "missing-cart", ReadCart: true})
	assert.True(t, errors.Is(err, services.ErrValidation))
}

func TestOrderService_CreateOrder_ForeignCart(t *testing.T) {
	f := newFixture(t)
	svc := services.NewOrderService(f.orders, f.users, f.games, f.collections, nil)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	hades := f.game(t, "Hades", 25)
	require.NoError(t, f.collections.AddGame(*alice.CartID, hades))

	for _, req := range []dto.OrderDTO{
		{CartGuid: *alice.CartID, ReadCart: true},
		{CartGuid: *alice.CartID, Games: []dto.GameDTO{{Title: "B", Price: 2}}},
		{CartGuid: "no-such-cart", Games: []dto.GameDTO{{Title: "B", Price: 2}}},
	} {
		_, err := svc.CreateOrder(bob.ID, req)
		assert.True(t, errors.Is(err, services.ErrValidation), "cart %s", req.CartGuid)
	}

	_, err := svc.CreateOrder("ghost", dto.OrderDTO{CartGuid: *alice.CartID})
	assert.True(t, errors.Is(err, services.ErrValidation))

	cart, err := f.collections.GetByID(*alice.CartID)
	require.NoError(t, err)
	assert.Len(t, cart.Games, 1)

	orders, err := svc.GetAllOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrder_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := services.NewOrderService(f.orders, f.users, f.games, f.collections, nil)
	buyer := f.user(t, "rejected")

	_, err := svc.CreateOrder("", dto.OrderDTO{CartGuid: "cart"})
	assert.True(t, errors.Is(err, services.ErrValidation))

	_, err = svc.CreateOrder(buyer.ID, dto.OrderDTO{CartGuid: *buyer.CartID, Games: []dto.GameDTO{{GameGuid: "missing"}}})
	assert.True(t, errors.Is(err, services.ErrValidation))

	// Missing CartGuid is caught by the schema, not by the service.
	_, err = svc.CreateOrder(buyer.ID, dto.OrderDTO{Games: []dto.GameDTO{{Title: "X", Price: 1}}})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, services.ErrValidation))

	orders, err := svc.GetAllOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_Listings(t *testing.T) {
	f := newFixture(t)
	svc := services.NewOrderService(f.orders, f.users, f.games, f.collections, nil)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	_, err := svc.CreateOrder(alice.ID, dto.OrderDTO{CartGuid: *alice.CartID, Games: []dto.GameDTO{{Title: "A", Price: 1}}})
	require.NoError(t, err)
	_, err = svc.CreateOrder(bob.ID, dto.OrderDTO{CartGuid: *bob.CartID, Games: []dto.GameDTO{{Title: "B", Price: 2}}})
	require.NoError(t, err)

	all, err := svc.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	withGames, err := svc.GetAllOrdersWithGames()
	require.NoError(t, err)
	for _, o := range withGames {
		assert.Len(t, o.Games, 1)
	}

	alices, err := svc.GetOrdersByUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, alices, 1)
	assert.Equal(t, "A", alices[0].Games[0].Title)

	_, err = svc.GetOrderByID("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
