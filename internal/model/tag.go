package model

import "time"

// Tag is a per-user label attachable to recipes.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Ingredient is a per-user ingredient attachable to recipes.
// Same shape and lifecycle as Tag.
type Ingredient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
