package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a stocked item. Stock may go negative (backorder).
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock      int             `gorm:"not null;default:0"`
	Active     bool            `gorm:"not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category   Category        `gorm:"foreignKey:CategoryID"`
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductFilters narrows ListProducts.
type ProductFilters struct {
	NameContains   string
	ActiveOnly     bool
	OutOfStockOnly bool // stock <= 0
}
