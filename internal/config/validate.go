package config

import (
	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrNegativeTimeout indicates probe_timeout is below zero.
	ErrNegativeTimeout = errors.New("probe_timeout must not be negative")

	// ErrEmptyGatewayPackage indicates gateway_package was set to an empty string.
	ErrEmptyGatewayPackage = errors.New("gateway_package must not be empty")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, errors.Newf("unsupported config version: %d", cfg.Version))
	}

	if cfg.ProbeTimeout < 0 {
		errs = append(errs, ErrNegativeTimeout)
	}

	if cfg.GatewayPackage == "" {
		errs = append(errs, ErrEmptyGatewayPackage)
	}

	if cfg.DefaultClient != "" && !paths.ValidClient(cfg.DefaultClient) {
		errs = append(errs, errors.Newf("invalid default client: %s", cfg.DefaultClient))
	}

	for name, o := range cfg.Clients {
		if !paths.ValidClient(name) {
			errs = append(errs, errors.Newf("invalid client override key: %s", name))
			continue
		}
		if o.ConfigPath == "" {
			continue
		}
		if err := paths.ValidatePath(o.ConfigPath); err != nil {
			errs = append(errs, &PathError{
				Field: "clients." + name + ".config_path",
				Path:  o.ConfigPath,
				Err:   err,
			})
		}
	}

	return errs
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
