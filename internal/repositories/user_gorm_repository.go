package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vapor/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user together with the cart, library and roles attached to it.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Lookups by username, email and id load the user's roles, which end up in issued tokens.

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.first("username = ?", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email = ?", email)
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	return r.first("id = ?", id)
}

// GetProfile retrieves a user with roles, cart and library games, and orders.
func (r *GORMUserRepository) GetProfile(id string) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Roles").
		Preload("Cart.Games").
		Preload("Library.Games").
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Orders.Games").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile of user %s: %w", id, err)
	}
	return &user, nil
}

// GetRoleByName retrieves a seeded role.
func (r *GORMUserRepository) GetRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get role %s: %w", name, err)
	}
	return &role, nil
}

// AddRole grants role to the user. Granting a role twice is a no-op.
func (r *GORMUserRepository) AddRole(userID string, role *models.Role) error {
	user := models.User{ID: userID}
	if err := r.db.Model(&user).Association("Roles").Append(role); err != nil {
		return fmt.Errorf("failed to grant role %s to user %s: %w", role.Name, userID, err)
	}
	return nil
}

func (r *GORMUserRepository) first(query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", arg, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", arg, err)
	}
	return &user, nil
}
