package config

import "errors"

// Sentinel errors returned by Load and Validate.
var (
	// ErrInvalidConfig marks a value that would leave the service unusable.
	ErrInvalidConfig = errors.New("invalid skillrate configuration")
	// ErrLoadConfig marks a YAML file or SKILLRATE_* variable that could not be read.
	ErrLoadConfig = errors.New("cannot load skillrate configuration")
)
