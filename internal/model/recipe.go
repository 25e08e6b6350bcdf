package model

import "time"

// Recipe represents a user's recipe with its tag and ingredient associations.
// Price is carried as a decimal string (two fractional digits) and stored as
// NUMERIC in PostgreSQL.
type Recipe struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	CookTime    int           `json:"cook_time"` // minutes
	Price       string        `json:"price"`
	Link        string        `json:"link,omitempty"`
	ImagePath   string        `json:"image,omitempty"`
	OwnerID     string        `json:"-"`
	Tags        []*Tag        `json:"-"`
	Ingredients []*Ingredient `json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TagIDs returns the ids of the recipe's tags.
func (r *Recipe) TagIDs() []string {
	ids := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs returns the ids of the recipe's ingredients.
func (r *Recipe) IngredientIDs() []string {
	ids := make([]string, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}

// HasImage reports whether an image file is attached.
func (r *Recipe) HasImage() bool {
	return r.ImagePath != ""
}
