package catalog

import "time"

// Product is a storefront item joined with its inventory row.
type Product struct {
	ID               int64     `json:"product_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	ImageURL         string    `json:"image_url"`
	Available        bool      `json:"available"`
	CreatedAt        time.Time `json:"created_at"`
	StockLevel       int       `json:"stock_level"`
	ReorderThreshold int       `json:"reorder_threshold,omitempty"`
}
