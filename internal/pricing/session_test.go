package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StartsWithOneLine(t *testing.T) {
	s := NewSession()

	require.Len(t, s.Materials(), 1)
	assert.Equal(t, float64(DefaultMarginPercent), s.TargetMarginPercent)
}

func TestSession_RejectsRemovingLastLine(t *testing.T) {
	s := NewSession()
	only := s.Materials()[0]

	assert.ErrorIs(t, s.RemoveMaterial(only.ID), ErrLastMaterial)
	assert.Len(t, s.Materials(), 1)
}

func TestSession_EditAndCalculate(t *testing.T) {
	s := NewSession()
	first := s.Materials()[0]
	first.Name, first.Unit, first.Price = "Flour", "kg", "150000"
	require.NoError(t, s.UpdateMaterial(first))

	milk := s.AddMaterial("Milk", "L", "75000")
	s.AddMaterial("Sugar", "kg", "28000")
	s.LaborCost = "50000"
	s.OverheadCost = "20000"
	s.Quantity = "10"

	assert.InDelta(t, 32300, s.Result().HPPPerUnit, 1e-9)

	require.NoError(t, s.RemoveMaterial(milk.ID))
	assert.InDelta(t, 24800, s.Result().HPPPerUnit, 1e-9)
	assert.ErrorIs(t, s.RemoveMaterial(milk.ID), ErrMaterialNotFound)
	assert.ErrorIs(t, s.UpdateMaterial(MaterialLine{ID: 99}), ErrMaterialNotFound)
}

func TestSession_InputsAreCopies(t *testing.T) {
	s := NewSession()
	in := s.Inputs()
	in.Materials[0].Price = "999"

	assert.Equal(t, "", s.Materials()[0].Price)
}
