package model

import (
	"gorm.io/gorm"
)

type OwnerRole string

const (
	RoleOwner OwnerRole = "owner"
)

// Owner is the account that registers and manages cafés.
type Owner struct {
	gorm.Model
	Login       string    `json:"login" gorm:"uniqueIndex"`
	Password    string    `json:"-"`
	DisplayName string    `json:"display_name"`
	PhoneNumber string    `json:"phone_number"`
	Role        OwnerRole `json:"role"`
	Cafes       []Cafe    `json:"cafes,omitempty" gorm:"foreignKey:OwnerID"`
}
