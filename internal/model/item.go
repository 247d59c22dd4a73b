package model

import "time"

// Item is one entry of a shopping list.
// Category is stored as entered; grouping normalizes it on read.
type Item struct {
	ID        string    `json:"id" yaml:"id"`
	ListID    string    `json:"list_id" yaml:"list_id"`
	Name      string    `json:"name" yaml:"name"`
	Category  string    `json:"category" yaml:"category"`
	Quantity  int       `json:"quantity" yaml:"quantity"`
	UnitPrice float64   `json:"unit_price" yaml:"unit_price"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ItemFields are the user-editable fields of an Item.
// Stores take them already validated.
type ItemFields struct {
	Name      string
	Category  string
	Quantity  int
	UnitPrice float64
}

// Fields returns the editable part of it.
func (it Item) Fields() ItemFields {
	return ItemFields{
		Name:      it.Name,
		Category:  it.Category,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
	}
}

// Apply copies f onto it, leaving identity and timestamps alone.
func (it Item) Apply(f ItemFields) Item {
	it.Name = f.Name
	it.Category = f.Category
	it.Quantity = f.Quantity
	it.UnitPrice = f.UnitPrice
	return it
}
