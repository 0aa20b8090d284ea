package config

import (
	"fmt"
	"strings"

	ccverrors "github.com/RyanGuild/ccver/internal/errors"
)

// ValidationError collects every validation failure found in a Config so
// a user sees them all at once instead of one at a time.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Addf adds a formatted error to the validation error.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Validator validates configuration.
type Validator struct {
	errors *ValidationError
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{errors: &ValidationError{}}
}

// Validate validates the configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateVersioning(cfg.Versioning)
	v.validateOutput(cfg.Output)

	if v.errors.HasErrors() {
		return ccverrors.Config("config.Validate", v.errors.Error())
	}

	return nil
}

func (v *Validator) validateVersioning(vc VersioningConfig) {
	if vc.TagPrefix == "" {
		v.errors.Addf("versioning.tag_prefix must not be empty")
	}
	if vc.DefaultBranch == "" {
		v.errors.Addf("versioning.default_branch must not be empty")
	}
	if len(vc.PromotionChain) == 0 {
		v.errors.Addf("versioning.promotion_chain must not be empty")
	}
	seen := make(map[string]bool, len(vc.PromotionChain))
	for _, branch := range vc.PromotionChain {
		if branch == "" {
			v.errors.Addf("versioning.promotion_chain must not contain an empty branch name")
			continue
		}
		if seen[branch] {
			v.errors.Addf("versioning.promotion_chain contains duplicate branch %q", branch)
		}
		seen[branch] = true
	}
}

func (v *Validator) validateOutput(oc OutputConfig) {
	switch oc.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		v.errors.Addf("output.log_level must be one of debug, info, warn, error, got %q", oc.LogLevel)
	}
}

// Validate validates cfg, returning a KindConfig *ccverrors.Error whose
// message lists every problem found.
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
