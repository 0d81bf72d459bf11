package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the stock state of a product.
type ProductStatus string

const (
	StatusInStock      ProductStatus = "IN_STOCK"
	StatusOutOfStock   ProductStatus = "OUT_OF_STOCK"
	StatusPreorder     ProductStatus = "PREORDER"
	StatusDiscontinued ProductStatus = "DISCONTINUED"
)

// ProductStatuses lists every valid ProductStatus in declaration order.
var ProductStatuses = []ProductStatus{
	StatusInStock,
	StatusOutOfStock,
	StatusPreorder,
	StatusDiscontinued,
}

// Valid reports whether s is one of the known statuses.
func (s ProductStatus) Valid() bool {
	for _, status := range ProductStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Product represents a product in the catalog.
// Pointer fields are optional; nil means the value is absent.
type Product struct {
	ID              int64               `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	Title           string              `json:"title" gorm:"type:varchar(100);not null"`
	Keywords        *string             `json:"keywords,omitempty" gorm:"type:varchar(200)"`
	Description     *string             `json:"description,omitempty" gorm:"type:text"`
	Rating          int                 `json:"rating" gorm:"not null"`
	QuantityInStock int                 `json:"quantityInStock" gorm:"not null"`
	Dimensions      *string             `json:"dimensions,omitempty" gorm:"type:varchar(50)"`
	Price           decimal.NullDecimal `json:"price" gorm:"type:numeric;not null"`
	Status          ProductStatus       `json:"status" gorm:"type:varchar(20);not null"`
	Weight          *float64            `json:"weight,omitempty"`
	DateAdded       *time.Time          `json:"dateAdded" gorm:"not null"`
	DateModified    *time.Time          `json:"dateModified,omitempty"`
}

// TableName overrides the default pluralized table name.
func (Product) TableName() string {
	return "product"
}
