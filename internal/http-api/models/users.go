package models

import "time"

// User roles. Only two exist: customers place orders, managers run the catalog.
const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;size:255;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"` // Not shown in JSON
	FirstName    string    `gorm:"size:50" json:"first_name,omitempty"`
	LastName     string    `gorm:"size:50" json:"last_name,omitempty"`
	Role         string    `gorm:"size:20;default:'customer';not null" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Orders []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

func (User) TableName() string {
	return "users"
}
