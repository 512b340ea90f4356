package ggicon

import "errors"

// Sentinel errors for ggicon.
var (
	// ErrInvalidConfig is returned when an Icon description cannot be drawn.
	// Every *ConfigError unwraps to it.
	ErrInvalidConfig = errors.New("ggicon: invalid configuration")

	// ErrUnknownPreset is returned by Preset for names it does not know.
	ErrUnknownPreset = errors.New("ggicon: unknown preset")
)

// ConfigError describes a single invalid field of an Icon description.
// It is always reported before anything is drawn or written.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "ggicon: invalid " + e.Field + ": " + e.Reason
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErr(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}
