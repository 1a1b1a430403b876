package config

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/paths"
	"github.com/thoreinstein/ntc/internal/target"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidHost indicates an unrecognized host name.
	ErrInvalidHost = errors.New("invalid host")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidAPILevel indicates an Android API level below the NDK minimum.
	ErrInvalidAPILevel = errors.New("android api_level must be >= 16")

	// ErrInvalidName indicates an executable name or suffix containing a path separator or whitespace.
	ErrInvalidName = errors.New("invalid executable name")

	// ErrUnknownProperty indicates a property the locator does not read.
	ErrUnknownProperty = errors.New("unknown property")
)

// minAPILevel is the oldest API level current NDKs target.
const minAPILevel = 16

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Host != "" {
		if _, err := target.ParseHost(cfg.Host); err != nil {
			errs = append(errs, &FieldError{Field: "host", Value: cfg.Host, Err: ErrInvalidHost})
		}
	}

	if cfg.WorkingDir != "" {
		if err := paths.Validate(cfg.WorkingDir); err != nil {
			errs = append(errs, &FieldError{Field: "working_dir", Value: cfg.WorkingDir, Err: ErrInvalidPath})
		}
	}

	for key, value := range cfg.Properties {
		if key != locator.PropertyAndroidNDK && key != locator.PropertyOsxcrossBin {
			errs = append(errs, &FieldError{Field: "properties." + key, Value: value, Err: ErrUnknownProperty})
			continue
		}
		if err := paths.Validate(value); err != nil {
			errs = append(errs, &FieldError{Field: "properties." + key, Value: value, Err: ErrInvalidPath})
		}
	}

	if cfg.Android.APILevel < minAPILevel {
		errs = append(errs, &FieldError{Field: "android.api_level", Value: fmt.Sprint(cfg.Android.APILevel), Err: ErrInvalidAPILevel})
	}
	if !validName(cfg.Android.Compiler, false) {
		errs = append(errs, &FieldError{Field: "android.compiler", Value: cfg.Android.Compiler, Err: ErrInvalidName})
	}
	if !validName(cfg.Osxcross.Darwin, false) {
		errs = append(errs, &FieldError{Field: "osxcross.darwin", Value: cfg.Osxcross.Darwin, Err: ErrInvalidName})
	}
	if !validName(cfg.Mingw.WrapperSuffix, true) {
		errs = append(errs, &FieldError{Field: "mingw.wrapper_suffix", Value: cfg.Mingw.WrapperSuffix, Err: ErrInvalidName})
	}

	return errs
}

// validName reports whether s can be spliced into an executable name.
func validName(s string, allowEmpty bool) bool {
	if s == "" {
		return allowEmpty
	}
	return !strings.ContainsAny(s, "/\\ \t\n\x00")
}

// FieldError represents an error for a specific configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.Field, e.Err.Error(), e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
