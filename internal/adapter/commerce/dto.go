package commerce

import (
	"encoding/json"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

// flexInt accepts both 12 and "12"; the commerce backend is not consistent about ids.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type productDTO struct {
	ProductID flexInt `json:"product_id"`
	CartID    string  `json:"cart_id"`
	Name      string  `json:"name"`
	Price     string  `json:"price"`
	Quantity  flexInt `json:"quantity"`
}

type totalDTO struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type menuContentDTO struct {
	CategoryID flexInt `json:"category_id"`
	Name       string  `json:"name"`
	Count      flexInt `json:"count"`
}

type cartResponse struct {
	Products []productDTO     `json:"products"`
	Totals   []totalDTO       `json:"totals"`
	Menu     []menuContentDTO `json:"menu"`
}

type editRequest struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
	Quantity  int    `json:"quantity"`
}

type removeRequest struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
}

type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type categoryProductsResponse struct {
	Products []struct {
		ProductID flexInt `json:"product_id"`
	} `json:"products"`
}

func (r *cartResponse) toEntity(sessionID string) *entity.CartSnapshot {
	snapshot := entity.NewCartSnapshot(sessionID)
	for _, p := range r.Products {
		// Backend rows with a non-positive quantity are stale and not part of the cart.
		if p.Quantity < 1 {
			continue
		}
		snapshot.Items = append(snapshot.Items, entity.LineItem{
			ProductID:   int64(p.ProductID),
			CartEntryID: p.CartID,
			Name:        p.Name,
			Price:       p.Price,
			Quantity:    int(p.Quantity),
		})
	}
	for _, t := range r.Totals {
		snapshot.Totals = append(snapshot.Totals, entity.TotalLine{Title: t.Title, Text: t.Text})
	}
	for _, m := range r.Menu {
		count := int(m.Count)
		if count < 0 {
			count = 0
		}
		snapshot.Bundle = append(snapshot.Bundle, entity.BundleGroup{
			CategoryID:    int64(m.CategoryID),
			Name:          m.Name,
			RequiredCount: count,
		})
	}
	return snapshot
}
