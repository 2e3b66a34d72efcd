package domain

import "time"

// Transaction is an immutable sale record. ProductName is a snapshot taken
// at sale time; later catalog renames or deletes do not touch past entries.
type Transaction struct {
	ID          int64     `json:"id,string"`
	ProductName string    `gorm:"index;size:200" json:"product_name"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName Specify table name
func (Transaction) TableName() string {
	return "sale_transaction"
}
