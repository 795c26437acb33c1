package model

import "time"

// Review is a user's rating of a product on a 1-5 scale.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	Rating    int       `json:"rating" db:"rating"`
	Text      string    `json:"text" db:"text"`
	UserID    int64     `json:"userId" db:"user_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReviewRequest is the payload for creating a review.
type ReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}
