package domain

import "time"

// Product is a catalog item. Stock is only ever mutated through the
// conditional update in the catalog repository, never read-then-written.
type Product struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index;size:200" json:"name" form:"name"`
	Price     float64   `json:"price" form:"price"`
	Stock     int       `gorm:"not null;default:0" json:"stock" form:"stock"`
	Image     string    `gorm:"size:1024" json:"image"` // filename or remote URL, may be empty
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}
