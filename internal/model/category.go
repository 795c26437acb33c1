package model

// Category groups products. Like products, categories are created empty and
// filled in by a later update.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// CategoryUpdate carries the editable category fields. The slug is always
// regenerated from the name, never supplied by the client.
type CategoryUpdate struct {
	Name string `json:"name"`
}
