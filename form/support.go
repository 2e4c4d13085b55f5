package form

import (
	"fmt"
	"strings"
)

// SupportLabel is the Yes/No choice of the support field. Only SupportYes and
// SupportNo exist; the 0/1 encoding happens at record assembly.
type SupportLabel struct {
	yes bool
}

var (
	SupportYes = SupportLabel{yes: true}
	SupportNo  = SupportLabel{yes: false}
)

func ParseSupportLabel(raw string) (SupportLabel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "sim", "y", "s":
		return SupportYes, nil
	case "no", "não", "nao", "n":
		return SupportNo, nil
	}
	return SupportLabel{}, fmt.Errorf("%s: %q is neither yes nor no", SupportUsed, raw)
}

func (s SupportLabel) Yes() bool {
	return s.yes
}

func (s SupportLabel) Encode() int {
	if s.yes {
		return 1
	}
	return 0
}

func (s SupportLabel) String() string {
	if s.yes {
		return "Yes"
	}
	return "No"
}
