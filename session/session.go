// Package session holds configuration that outlives scene reloads.
package session

import "fmt"

const (
	VariantOne = 1
	VariantTwo = 2
)

// Session is owned by the game and handed by pointer to the systems that need
// it. The zero value selects VariantOne.
type Session struct {
	variant int
}

func New(variant int) (*Session, error) {
	s := &Session{}
	if err := s.SetVariant(variant); err != nil {
		return nil, err
	}
	return s, nil
}

// Variant is the active level subtree, 1 or 2.
func (s *Session) Variant() int {
	if s == nil || s.variant == 0 {
		return VariantOne
	}
	return s.variant
}

func (s *Session) SetVariant(v int) error {
	if v != VariantOne && v != VariantTwo {
		return fmt.Errorf("session: invalid level variant %d", v)
	}
	s.variant = v
	return nil
}

// Toggle flips between the two variants and returns the new one.
func (s *Session) Toggle() int {
	if s.Variant() == VariantOne {
		s.variant = VariantTwo
	} else {
		s.variant = VariantOne
	}
	return s.variant
}
