// Package validate checks user input before anything is written.
package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/idilsaglam/basket/internal/model"
)

// Kinds of input error. Match them with errors.Is.
var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrEmptyTitle      = errors.New("empty title")
)

// MaxQuantity bounds a single line's quantity.
const MaxQuantity = math.MaxInt16

// DefaultCategory is used when no category is configured or chosen.
const DefaultCategory = "Food"

// Error is a rejected input. Message is what the user sees.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

var messages = map[error]string{
	ErrEmptyName:       "Item name cannot be empty.",
	ErrInvalidQuantity: "Quantity must be a positive number.",
	ErrInvalidPrice:    "Price must be a valid non-negative number.",
	ErrEmptyTitle:      "List name cannot be empty.",
}

func fail(kind error) *Error {
	return &Error{Kind: kind, Message: messages[kind]}
}

// Input is raw item input as typed. Category is nil when none was chosen.
type Input struct {
	Name     string
	Quantity string
	Price    string
	Category *string
}

// Validator resolves missing categories to DefaultCategory.
type Validator struct {
	DefaultCategory string
}

// Item checks in order name, quantity, price and returns the first
// failure. On success the fields are trimmed and parsed.
func (v Validator) Item(in Input) (model.ItemFields, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.ItemFields{}, fail(ErrEmptyName)
	}

	qty, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil || qty <= 0 || qty > MaxQuantity {
		return model.ItemFields{}, fail(ErrInvalidQuantity)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return model.ItemFields{}, fail(ErrInvalidPrice)
	}

	return model.ItemFields{
		Name:      name,
		Category:  v.category(in.Category),
		Quantity:  qty,
		UnitPrice: price,
	}, nil
}

func (v Validator) category(c *string) string {
	if c != nil {
		if s := strings.TrimSpace(*c); s != "" {
			return s
		}
	}
	if d := strings.TrimSpace(v.DefaultCategory); d != "" {
		return d
	}
	return DefaultCategory
}

// ValidateItem validates with no category chosen.
func ValidateItem(name, quantity, price string) (model.ItemFields, error) {
	return Validator{}.Item(Input{Name: name, Quantity: quantity, Price: price})
}

// ListTitle trims title and rejects it when blank.
func ListTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", fail(ErrEmptyTitle)
	}
	return t, nil
}

// FormatPrice renders a price the way the input field expects it back.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
