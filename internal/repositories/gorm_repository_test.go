package repositories_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vapor/internal/database/databasetest"
	"vapor/internal/models"
	"vapor/internal/repositories"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return databasetest.Open(t)
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    name + "@example.com",
		Password: "hash",
		Cart:     &models.Cart{},
		Library:  &models.Library{},
	}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(user))
	return user
}

func TestGORMOrderRepository_EmptyLists(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(setupDB(t))

	orders, err := repo.GetAll()
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	orders, err = repo.GetAllWithGames()
	require.NoError(t, err)
	assert.Empty(t, orders)

	orders, err = repo.GetByUserID("nobody")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestGORMOrderRepository_CreateAndRead(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	user := createUser(t, db, "buyer")

	order := &models.Order{
		UserID: user.ID,
		CartID: *user.CartID,
		Price:  29.99,
		Games: []models.Game{
			{Title: "X", Price: 9.99},
			{Title: "Y", Price: 20},
		},
	}
	require.NoError(t, repo.Create(order))
	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, order.Games[0].ID)

	fetched, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.UserID)
	assert.Equal(t, *user.CartID, fetched.CartID)
	assert.Len(t, fetched.Games, 2)

	byUser, err := repo.GetByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Len(t, byUser[0].Games, 2)

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Games)

	var joinRows int64
	require.NoError(t, db.Model(&models.OrderGame{}).Where("order_id = ?", order.ID).Count(&joinRows).Error)
	assert.Equal(t, int64(2), joinRows)
}

func TestGORMOrderRepository_ReusesExistingGame(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	games := repositories.NewGORMGameRepository(db)
	user := createUser(t, db, "collector")

	game := &models.Game{Title: "Existing", Price: 5}
	require.NoError(t, games.Create(game))

	order := &models.Order{UserID: user.ID, CartID: *user.CartID, Games: []models.Game{*game}}
	require.NoError(t, repo.Create(order))

	fetched, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Games, 1)
	assert.Equal(t, "Existing", fetched.Games[0].Title)

	all, err := games.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGORMOrderRepository_CheckoutEmptiesCart(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	carts := repositories.NewGORMCollectionRepository(db)
	games := repositories.NewGORMGameRepository(db)
	user := createUser(t, db, "checkout")

	game := &models.Game{Title: "Hades", Price: 25}
	require.NoError(t, games.Create(game))
	require.NoError(t, carts.AddGame(*user.CartID, game))

	order := &models.Order{UserID: user.ID, CartID: *user.CartID, Price: 25, Games: []models.Game{*game}}
	require.NoError(t, repo.Checkout(order))

	cart, err := carts.GetByID(*user.CartID)
	require.NoError(t, err)
	assert.Empty(t, cart.Games)

	fetched, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Games, 1)
	assert.Equal(t, game.ID, fetched.Games[0].ID)
}

func TestGORMOrderRepository_CheckoutRollsBack(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	carts := repositories.NewGORMCollectionRepository(db)
	games := repositories.NewGORMGameRepository(db)
	user := createUser(t, db, "rollback")

	game := &models.Game{Title: "Hades", Price: 25}
	require.NoError(t, games.Create(game))
	require.NoError(t, carts.AddGame(*user.CartID, game))

	// An unknown buyer fails the insert; the cart must keep its games.
	err := repo.Checkout(&models.Order{UserID: "ghost", CartID: *user.CartID, Games: []models.Game{*game}})
	assert.Error(t, err)

	cart, err := carts.GetByID(*user.CartID)
	require.NoError(t, err)
	assert.Len(t, cart.Games, 1)
}

func TestGORMOrderRepository_NotFound(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(setupDB(t))

	_, err := repo.GetByID("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestGORMOrderRepository_RejectsUnknownUser(t *testing.T) {
	repo := repositories.NewGORMOrderRepository(setupDB(t))

	err := repo.Create(&models.Order{UserID: "ghost", CartID: "00000000-0000-0000-0000-000000000000"})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, repositories.ErrNotFound))
}

func TestGORMUserRepository_ProfileAndLookups(t *testing.T) {
	db := setupDB(t)
	users := repositories.NewGORMUserRepository(db)

	role, err := users.GetRoleByName(models.RoleUser)
	require.NoError(t, err)

	user := &models.User{
		Username: "gamer",
		Email:    "gamer@example.com",
		Password: "hash",
		Cart:     &models.Cart{},
		Library:  &models.Library{},
		Roles:    []models.Role{*role},
	}
	require.NoError(t, users.Create(user))
	require.NotNil(t, user.CartID)
	require.NotNil(t, user.LibraryID)

	byEmail, err := users.GetByEmail("gamer@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	require.Len(t, byEmail.Roles, 1)

	admin, err := users.GetRoleByName(models.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, users.AddRole(user.ID, admin))
	require.NoError(t, users.AddRole(user.ID, admin))

	byID, err := users.GetByID(user.ID)
	require.NoError(t, err)
	names := []string{}
	for _, r := range byID.Roles {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{models.RoleUser, models.RoleAdmin}, names)

	_, err = users.GetByUsername("nobody")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	profile, err := users.GetProfile(user.ID)
	require.NoError(t, err)
	require.Len(t, profile.Roles, 1)
	assert.Equal(t, models.RoleUser, profile.Roles[0].Name)
	require.NotNil(t, profile.Cart)
	require.NotNil(t, profile.Library)

	_, err = users.GetRoleByName("superuser")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	// Duplicate email violates the unique index.
	dup := &models.User{Username: "other", Email: "gamer@example.com", Password: "hash"}
	assert.Error(t, users.Create(dup))
}

func TestGORMCollectionRepository_CartAndLibrary(t *testing.T) {
	db := setupDB(t)
	collections := repositories.NewGORMCollectionRepository(db)
	games := repositories.NewGORMGameRepository(db)
	user := createUser(t, db, "shopper")

	game := &models.Game{Title: "Z", Price: 3}
	require.NoError(t, games.Create(game))

	require.NoError(t, collections.AddGame(*user.CartID, game))
	require.NoError(t, collections.AddGame(*user.CartID, game))

	cart, err := collections.GetByID(*user.CartID)
	require.NoError(t, err)
	assert.Len(t, cart.Games, 1)

	require.NoError(t, collections.AddGames(*user.LibraryID, []models.Game{*game}))
	require.NoError(t, collections.AddGames(*user.LibraryID, []models.Game{*game}))
	require.NoError(t, collections.AddGames(*user.LibraryID, nil))

	var count int64
	require.NoError(t, db.Model(&models.LibraryGame{}).Where("library_id = ?", *user.LibraryID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = collections.GetByID("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
