package config

import "errors"

var (
	ErrInvalid       = errors.New("config: invalid value")
	ErrUnknownWind   = errors.New("config: unknown wind mode")
	ErrUnknownPreset = errors.New("config: unknown preset")
)
