package repositories

import "vapor/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetProfile(id string) (*models.User, error)
	GetRoleByName(name string) (*models.Role, error)
	AddRole(userID string, role *models.Role) error
}
