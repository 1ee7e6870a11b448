package entity

import (
	"fmt"
	"sort"
	"strings"
)

// Settings is the process-wide review configuration.
type Settings struct {
	ActiveInputEnabled        bool `json:"activeInput"`
	ReverseModeEnabled        bool `json:"reverseMode"`
	ColorCodedFeedbackEnabled bool `json:"colorCodedCards"`
}

// DefaultSettings returns the settings used before anything is stored.
func DefaultSettings() Settings {
	return Settings{}
}

// Setting names accepted by Settings.Set.
const (
	SettingActiveInput        = "active-input"
	SettingReverseMode        = "reverse-mode"
	SettingColorCodedFeedback = "color-coded-feedback"
)

func (s *Settings) field(name string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SettingActiveInput:
		return &s.ActiveInputEnabled, nil
	case SettingReverseMode:
		return &s.ReverseModeEnabled, nil
	case SettingColorCodedFeedback:
		return &s.ColorCodedFeedbackEnabled, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
}

// Set assigns the named flag.
func (s *Settings) Set(name string, value bool) error {
	f, err := s.field(name)
	if err != nil {
		return err
	}
	*f = value
	return nil
}

// Get returns the named flag.
func (s Settings) Get(name string) (bool, error) {
	f, err := s.field(name)
	if err != nil {
		return false, err
	}
	return *f, nil
}

// SettingNames lists the accepted setting names in a stable order.
func SettingNames() []string {
	names := []string{SettingActiveInput, SettingReverseMode, SettingColorCodedFeedback}
	sort.Strings(names)
	return names
}
