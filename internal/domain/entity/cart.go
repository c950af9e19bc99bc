package entity

import (
	"errors"
	"strings"
)

// authoritativeTotalTitles are the totals titles the commerce backend uses for the grand total.
var authoritativeTotalTitles = []string{"total", "gesamtsumme"}

type LineItem struct {
	ProductID   int64  `json:"product_id"`
	CartEntryID string `json:"cart_entry_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}

func NewLineItem(productID int64, cartEntryID, name, price string, quantity int) (*LineItem, error) {
	if cartEntryID == "" {
		return nil, errors.New("cart entry ID cannot be empty for line item")
	}
	if quantity < 1 {
		return nil, errors.New("line item quantity must be positive")
	}
	return &LineItem{
		ProductID:   productID,
		CartEntryID: cartEntryID,
		Name:        name,
		Price:       price,
		Quantity:    quantity,
	}, nil
}

// TotalLine is one row of the totals block rendered by the commerce backend, e.g. {"Zwischensumme", "25,00 €"}.
type TotalLine struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type CartSnapshot struct {
	SessionID string           `json:"session_id"`
	Items     []LineItem       `json:"items"`
	Totals    []TotalLine      `json:"totals"`
	Bundle    BundleDefinition `json:"bundle"`
}

func NewCartSnapshot(sessionID string) *CartSnapshot {
	return &CartSnapshot{
		SessionID: sessionID,
		Items:     make([]LineItem, 0),
		Totals:    make([]TotalLine, 0),
		Bundle:    make(BundleDefinition, 0),
	}
}

func (c *CartSnapshot) GetItem(cartEntryID string) (*LineItem, int) {
	for i, item := range c.Items {
		if item.CartEntryID == cartEntryID {
			return &c.Items[i], i
		}
	}
	return nil, -1
}

func (c *CartSnapshot) IsEmpty() bool {
	return len(c.Items) == 0
}

// AuthoritativeTotalText returns the backend's grand total text. A row titled like a grand
// total wins; otherwise the last row is used.
func (c *CartSnapshot) AuthoritativeTotalText() *string {
	if len(c.Totals) == 0 {
		return nil
	}
	for i := range c.Totals {
		title := strings.ToLower(strings.TrimSpace(c.Totals[i].Title))
		for _, t := range authoritativeTotalTitles {
			if title == t {
				return &c.Totals[i].Text
			}
		}
	}
	return &c.Totals[len(c.Totals)-1].Text
}

// ComputeTotals computes subtotal and total for the snapshot.
func (c *CartSnapshot) ComputeTotals() Totals {
	return ComputeTotals(c.Items, c.AuthoritativeTotalText())
}
