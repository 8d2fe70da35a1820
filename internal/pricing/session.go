package pricing

import (
	"errors"
	"slices"
)

var (
	// ErrLastMaterial is returned when removing the only remaining line.
	ErrLastMaterial = errors.New("at least one material line is required")
	// ErrMaterialNotFound is returned for an unknown line id.
	ErrMaterialNotFound = errors.New("material line not found")
)

// Session is the editable state of one calculator form. It is owned by a
// single user and is not safe for concurrent use.
type Session struct {
	materials []MaterialLine
	nextID    int

	LaborCost           string
	OverheadCost        string
	Quantity            string
	TargetMarginPercent float64
}

// NewSession starts a calculation with one empty material line and the default margin.
func NewSession() *Session {
	s := &Session{Quantity: "1", TargetMarginPercent: DefaultMarginPercent}
	s.AddMaterial("", "", "")
	return s
}

// AddMaterial appends a line and returns it with its session-local id.
func (s *Session) AddMaterial(name, unit, price string) MaterialLine {
	s.nextID++
	line := MaterialLine{ID: s.nextID, Name: name, Unit: unit, Price: price}
	s.materials = append(s.materials, line)
	return line
}

// UpdateMaterial replaces the fields of an existing line.
func (s *Session) UpdateMaterial(line MaterialLine) error {
	i := s.index(line.ID)
	if i < 0 {
		return ErrMaterialNotFound
	}
	s.materials[i] = line
	return nil
}

// RemoveMaterial deletes a line unless it is the last one.
func (s *Session) RemoveMaterial(id int) error {
	i := s.index(id)
	if i < 0 {
		return ErrMaterialNotFound
	}
	if len(s.materials) == 1 {
		return ErrLastMaterial
	}
	s.materials = slices.Delete(s.materials, i, i+1)
	return nil
}

// Materials returns a copy of the current lines.
func (s *Session) Materials() []MaterialLine {
	return slices.Clone(s.materials)
}

// Inputs snapshots the form by value for Calculate.
func (s *Session) Inputs() CostInputs {
	return CostInputs{
		Materials:           s.Materials(),
		LaborCost:           s.LaborCost,
		OverheadCost:        s.OverheadCost,
		Quantity:            s.Quantity,
		TargetMarginPercent: s.TargetMarginPercent,
	}
}

// Result recomputes the calculation from the current form.
func (s *Session) Result() Result {
	return Calculate(s.Inputs())
}

func (s *Session) index(id int) int {
	return slices.IndexFunc(s.materials, func(m MaterialLine) bool { return m.ID == id })
}
