package models

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `                                json:"created_at"`
}

type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Price        float64   `gorm:"not null"                 json:"price"`
	ProductImage string    `                                json:"productImage"`
	CreatedAt    time.Time `                                json:"created_at"`
}

type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"     json:"productId"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE;" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1"           json:"quantity"`
	CreatedAt time.Time `                                    json:"created_at"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&Account{}, &Product{}, &Order{}}
}
