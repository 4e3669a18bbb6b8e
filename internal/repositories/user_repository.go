package repositories

import (
	"dilspay/internal/models"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(userID uint, hashed string) error
}
