package entity

import "errors"

type ProductSet map[int64]struct{}

func NewProductSet(ids ...int64) ProductSet {
	s := make(ProductSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s ProductSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// BundleGroup is one "menu content" entry: a category from which at least
// RequiredCount items must be in the cart.
type BundleGroup struct {
	CategoryID    int64      `json:"category_id"`
	Name          string     `json:"name"`
	RequiredCount int        `json:"required_count"`
	Members       ProductSet `json:"-"`
}

func NewBundleGroup(categoryID int64, name string, requiredCount int) (*BundleGroup, error) {
	if name == "" {
		return nil, errors.New("bundle group name cannot be empty")
	}
	if requiredCount < 0 {
		return nil, errors.New("bundle group required count cannot be negative")
	}
	return &BundleGroup{
		CategoryID:    categoryID,
		Name:          name,
		RequiredCount: requiredCount,
		Members:       NewProductSet(),
	}, nil
}

// CountIn sums the quantities of items that belong to the group.
func (g BundleGroup) CountIn(items []LineItem) int {
	count := 0
	for _, item := range items {
		if g.Members.Contains(item.ProductID) {
			count += item.Quantity
		}
	}
	return count
}

// BundleDefinition is ordered; the first unsatisfied group is the one reported.
type BundleDefinition []BundleGroup

// WithMembers returns a copy of the definition whose groups carry the given
// membership sets, matched by index. Missing entries leave the group empty.
func (b BundleDefinition) WithMembers(members []ProductSet) BundleDefinition {
	out := make(BundleDefinition, len(b))
	for i, g := range b {
		out[i] = g
		if i < len(members) && members[i] != nil {
			out[i].Members = members[i]
		} else {
			out[i].Members = NewProductSet()
		}
	}
	return out
}

func (b BundleDefinition) Validate(items []LineItem) ValidationResult {
	for _, group := range b {
		if group.RequiredCount == 0 {
			continue
		}
		current := group.CountIn(items)
		if current < group.RequiredCount {
			return Unsatisfied(group.Name, group.RequiredCount, current)
		}
	}
	return Satisfied()
}

type ValidationResult struct {
	Satisfied     bool   `json:"satisfied"`
	GroupName     string `json:"group_name,omitempty"`
	RequiredCount int    `json:"required_count"`
	CurrentCount  int    `json:"current_count"`
}

func Satisfied() ValidationResult {
	return ValidationResult{Satisfied: true}
}

func Unsatisfied(groupName string, required, current int) ValidationResult {
	return ValidationResult{
		GroupName:     groupName,
		RequiredCount: required,
		CurrentCount:  current,
	}
}

// Missing is how many more items the reported group needs.
func (r ValidationResult) Missing() int {
	if r.Satisfied {
		return 0
	}
	return r.RequiredCount - r.CurrentCount
}
