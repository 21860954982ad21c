package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/torkilv/phase-out-village/internal/economy"
)

var (
	ErrUnknownField        = errors.New("unknown field")
	ErrFieldRetired        = errors.New("field already phased out")
	ErrInvalidPhaseOutYear = errors.New("invalid phase-out year")
	ErrInvalidYear         = errors.New("invalid year")
	ErrInvalidOilPrice     = errors.New("invalid oil price")
	ErrUnknownInvestment   = economy.ErrUnknownInvestment
)

// Command is a player or system action applied by Reduce.
type Command interface {
	Name() string
	apply(s *State) error
}

// Reduce applies cmd to a copy of s. s itself is never modified, and on
// error the zero State is returned alongside it.
func Reduce(s State, cmd Command) (State, error) {
	next := s.Clone()
	if err := cmd.apply(&next); err != nil {
		return State{}, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return next, nil
}

type AdvanceYear struct{}

func (AdvanceYear) Name() string { return "advance_year" }

func (AdvanceYear) apply(s *State) error {
	s.CurrentYear++
	return nil
}

type SetYear struct {
	Year int
}

func (SetYear) Name() string { return "set_year" }

func (c SetYear) apply(s *State) error {
	if c.Year <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, c.Year)
	}
	s.CurrentYear = c.Year
	return nil
}

// PhaseOutField retires a field immediately. Any pending schedule for it is
// dropped.
type PhaseOutField struct {
	FieldID string
}

func (PhaseOutField) Name() string { return "phase_out_field" }

func (c PhaseOutField) apply(s *State) error {
	if _, ok := s.Fields[c.FieldID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, c.FieldID)
	}
	s.Retired = s.Retired.With(c.FieldID)
	delete(s.Scheduled, c.FieldID)
	return nil
}

// SchedulePhaseOut sets the year a field stops producing. The year must be
// one of the field's options and not already past.
type SchedulePhaseOut struct {
	FieldID string
	Year    int
}

func (SchedulePhaseOut) Name() string { return "schedule_phase_out" }

func (c SchedulePhaseOut) apply(s *State) error {
	f, ok := s.Fields[c.FieldID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, c.FieldID)
	}
	if s.Retired.Has(c.FieldID) {
		return fmt.Errorf("%w: %s", ErrFieldRetired, c.FieldID)
	}
	if c.Year < s.CurrentYear {
		return fmt.Errorf("%w: %d is before %d", ErrInvalidPhaseOutYear, c.Year, s.CurrentYear)
	}
	if len(f.PhaseOutYearOptions) > 0 && !slices.Contains(f.PhaseOutYearOptions, c.Year) {
		return fmt.Errorf("%w: %d not offered for %s", ErrInvalidPhaseOutYear, c.Year, c.FieldID)
	}
	s.Scheduled[c.FieldID] = c.Year
	return nil
}

type StartInvestment struct {
	Type economy.InvestmentType
}

func (StartInvestment) Name() string { return "start_investment" }

func (c StartInvestment) apply(s *State) error {
	inv, err := economy.LookupInvestment(c.Type)
	if err != nil {
		return err
	}
	s.Investments = append(s.Investments, economy.ActiveInvestment{Investment: inv, StartYear: s.CurrentYear})
	return nil
}

// SelectField focuses a field; an empty ID clears the selection.
type SelectField struct {
	FieldID string
}

func (SelectField) Name() string { return "select_field" }

func (c SelectField) apply(s *State) error {
	if c.FieldID != "" {
		if _, ok := s.Fields[c.FieldID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, c.FieldID)
		}
	}
	s.SelectedFieldID = c.FieldID
	return nil
}

type SetOilPrice struct {
	Price float64
}

func (SetOilPrice) Name() string { return "set_oil_price" }

func (c SetOilPrice) apply(s *State) error {
	if c.Price < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidOilPrice, c.Price)
	}
	s.OilPrice = c.Price
	return nil
}
