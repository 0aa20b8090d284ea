package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefaultsPass(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidateRejectsEmptyTagPrefix(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Versioning.TagPrefix = ""

	assert.Error(t, Validate(cfg), "want error for empty tag prefix")
}

func TestValidateRejectsEmptyPromotionChain(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Versioning.PromotionChain = nil

	assert.Error(t, Validate(cfg), "want error for empty promotion chain")
}

func TestValidateRejectsDuplicateBranchInChain(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Versioning.PromotionChain = []string{"main", "main"}

	assert.Error(t, Validate(cfg), "want error for duplicate branch")
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Output.LogLevel = "verbose"

	assert.Error(t, Validate(cfg), "want error for unknown log level")
}
