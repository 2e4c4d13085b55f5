package form

import (
	"fmt"
	"slices"
)

// State is where a session is in the submit cycle.
type State int

const (
	StateIdle State = iota
	StatePredicting
	StateResultShown
	StateErrorShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePredicting:
		return "predicting"
	case StateResultShown:
		return "result_shown"
	case StateErrorShown:
		return "error_shown"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is the form state of one user. It is not safe for concurrent use;
// callers serialize access per session.
type Session struct {
	ID string

	options Options
	choices map[Field]string
	numbers map[Field]float64
	support SupportLabel
	state   State
}

// NewSession starts a session with default values. opts is shared and must
// not be modified.
func NewSession(id string, opts Options) *Session {
	s := &Session{
		ID:      id,
		options: opts,
		choices: make(map[Field]string, len(choices)),
		numbers: make(map[Field]float64, len(numbers)),
		support: SupportYes,
	}
	for _, c := range choices {
		if list := opts[c.Field]; len(list) > 0 {
			s.choices[c.Field] = list[0]
		}
	}
	for _, n := range numbers {
		s.numbers[n.Field] = n.Default
	}
	return s
}

// Set applies one field change from its raw input text. Numbers are clamped
// into range; a choice outside the field's options is rejected and leaves the
// session unchanged. Any change returns the session to idle.
func (s *Session) Set(field Field, raw string) error {
	if n, ok := numberSpec(field); ok {
		v, err := n.Parse(raw)
		if err != nil {
			return err
		}
		s.numbers[field] = v
		s.state = StateIdle
		return nil
	}
	if field == SupportUsed {
		label, err := ParseSupportLabel(raw)
		if err != nil {
			return err
		}
		s.support = label
		s.state = StateIdle
		return nil
	}
	if list, ok := s.options[field]; ok {
		if !slices.Contains(list, raw) {
			return fmt.Errorf("%s: %q is not one of the available options", field, raw)
		}
		s.choices[field] = raw
		s.state = StateIdle
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownField, field)
}

func (s *Session) Number(field Field) float64 {
	return s.numbers[field]
}

func (s *Session) Choice(field Field) string {
	return s.choices[field]
}

func (s *Session) Support() SupportLabel {
	return s.support
}

func (s *Session) Options(field Field) []string {
	return s.options[field]
}

// Display returns the current value of field as its input control shows it.
func (s *Session) Display(field Field) string {
	if n, ok := numberSpec(field); ok {
		return n.Format(s.numbers[field])
	}
	if field == SupportUsed {
		return s.support.String()
	}
	return s.choices[field]
}

func (s *Session) State() State {
	return s.state
}

// Begin marks a submit in progress.
func (s *Session) Begin() {
	s.state = StatePredicting
}

// Finish records how the submit ended.
func (s *Session) Finish(ok bool) {
	if ok {
		s.state = StateResultShown
	} else {
		s.state = StateErrorShown
	}
}

// Record assembles the model input from the current values.
func (s *Session) Record() (PrintJobRecord, error) {
	for _, c := range choices {
		if _, ok := s.choices[c.Field]; !ok {
			return PrintJobRecord{}, fmt.Errorf("%s has no value", c.Field)
		}
	}
	r := PrintJobRecord{
		PrinterModel:     s.choices[PrinterModel],
		FilamentMaterial: s.choices[FilamentMaterial],
		FilamentColor:    s.choices[FilamentColor],
		NozzleDiameterMM: s.numbers[NozzleDiameterMM],
		NozzleTempC:      s.integer(NozzleTempC),
		BedTempC:         s.integer(BedTempC),
		LayerHeightMM:    s.numbers[LayerHeightMM],
		InfillPercent:    s.integer(InfillPercent),
		PrintSpeedMMS:    s.integer(PrintSpeedMMS),
		PartVolumeCM3:    s.numbers[PartVolumeCM3],
		PrintTimeHours:   s.numbers[PrintTimeHours],
		SupportUsed:      s.support.Encode(),
		AmbientTempC:     s.integer(AmbientTempC),
	}
	if err := r.Validate(); err != nil {
		return PrintJobRecord{}, err
	}
	return r, nil
}

func (s *Session) integer(field Field) int {
	return int(s.numbers[field])
}
