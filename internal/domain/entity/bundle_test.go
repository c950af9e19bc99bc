package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuDefinition() BundleDefinition {
	return BundleDefinition{
		{CategoryID: 10, Name: "Salat", RequiredCount: 2, Members: NewProductSet(1, 2)},
		{CategoryID: 20, Name: "Dessert", RequiredCount: 1, Members: NewProductSet(3)},
	}
}

func TestBundleDefinition_Validate_ReportsFirstUnsatisfiedGroup(t *testing.T) {
	items := []LineItem{{ProductID: 1, CartEntryID: "a", Quantity: 1}}

	got := menuDefinition().Validate(items)

	assert.Equal(t, Unsatisfied("Salat", 2, 1), got)
	assert.Equal(t, 1, got.Missing())
}

func TestBundleDefinition_Validate_SecondGroupFails(t *testing.T) {
	items := []LineItem{
		{ProductID: 1, CartEntryID: "a", Quantity: 1},
		{ProductID: 2, CartEntryID: "b", Quantity: 1},
	}

	got := menuDefinition().Validate(items)

	assert.False(t, got.Satisfied)
	assert.Equal(t, "Dessert", got.GroupName)
	assert.Equal(t, 1, got.RequiredCount)
	assert.Equal(t, 0, got.CurrentCount)
}

func TestBundleDefinition_Validate_Satisfied(t *testing.T) {
	items := []LineItem{
		{ProductID: 2, CartEntryID: "a", Quantity: 2},
		{ProductID: 3, CartEntryID: "b", Quantity: 1},
		{ProductID: 99, CartEntryID: "c", Quantity: 5},
	}

	got := menuDefinition().Validate(items)

	assert.True(t, got.Satisfied)
	assert.Equal(t, 0, got.Missing())
}

func TestBundleDefinition_Validate_ZeroRequiredAlwaysPasses(t *testing.T) {
	def := BundleDefinition{
		{CategoryID: 30, Name: "Getränk", RequiredCount: 0, Members: NewProductSet()},
	}

	assert.True(t, def.Validate(nil).Satisfied)
	assert.True(t, def.Validate([]LineItem{{ProductID: 7, CartEntryID: "x", Quantity: 1}}).Satisfied)
}

func TestBundleDefinition_Validate_EmptyMembershipIsUnsatisfied(t *testing.T) {
	def := BundleDefinition{{CategoryID: 40, Name: "Beilage", RequiredCount: 1}}

	got := def.Validate([]LineItem{{ProductID: 1, CartEntryID: "a", Quantity: 3}})

	assert.Equal(t, Unsatisfied("Beilage", 1, 0), got)
}

func TestBundleDefinition_Validate_EmptyDefinition(t *testing.T) {
	assert.True(t, BundleDefinition{}.Validate(nil).Satisfied)
}

func TestBundleDefinition_Validate_Idempotent(t *testing.T) {
	def := menuDefinition()
	items := []LineItem{{ProductID: 1, CartEntryID: "a", Quantity: 1}}

	assert.Equal(t, def.Validate(items), def.Validate(items))
}

func TestBundleDefinition_WithMembers(t *testing.T) {
	def := BundleDefinition{
		{CategoryID: 10, Name: "Salat", RequiredCount: 1},
		{CategoryID: 20, Name: "Dessert", RequiredCount: 1},
	}

	resolved := def.WithMembers([]ProductSet{NewProductSet(1)})

	assert.True(t, resolved[0].Members.Contains(1))
	assert.NotNil(t, resolved[1].Members)
	assert.Empty(t, resolved[1].Members)
	assert.Nil(t, def[0].Members)
}

func TestNewBundleGroup_Validation(t *testing.T) {
	_, err := NewBundleGroup(1, "", 1)
	assert.Error(t, err)

	_, err = NewBundleGroup(1, "Salat", -1)
	assert.Error(t, err)

	g, err := NewBundleGroup(1, "Salat", 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, g.RequiredCount)
}

func TestValidationResult_JSONKeepsZeroCurrentCount(t *testing.T) {
	data, err := json.Marshal(Unsatisfied("Dessert", 1, 0))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(0), raw["current_count"])
	assert.Equal(t, float64(1), raw["required_count"])
}
