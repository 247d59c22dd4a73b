package model

import "time"

// List is a named shopping list. Its item count is never stored;
// it is derived from the items each time it is needed.
type List struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
