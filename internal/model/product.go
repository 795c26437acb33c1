package model

import "time"

// Product represents a catalogue product.
//
// A freshly created product is a draft: name, slug and description are empty
// and price is zero until a follow-up update fills them in. Category is nil
// for drafts that have not been assigned to a category yet.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Images      []string  `json:"images" db:"images"`
	Category    *Category `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProductUpdate carries the fields applied to a product during the second
// phase of the two-phase creation protocol (and any later edit).
type ProductUpdate struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
	CategoryID  int64    `json:"categoryId"`
}

// ProductPage is a single page of catalogue results together with the total
// number of rows matching the same filter.
type ProductPage struct {
	Products []Product `json:"products"`
	Count    int64     `json:"count"`
}
