package preset

import "errors"

var (
	// ErrUnknownPreset is returned when a lookup matches no factory preset.
	ErrUnknownPreset = errors.New("preset: unknown preset")
	// ErrInvalidPreset wraps every range or enum violation.
	ErrInvalidPreset = errors.New("preset: invalid preset")
)
