package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"` // Unique index on Email
	CPF      string `gorm:"uniqueIndex;not null"` // Unique index on national id
	Password string `gorm:"not null"`
	Role     string `gorm:"default:'user'"`
}
