package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBinaryName(t *testing.T) {
	assert.NoError(t, ValidateBinaryName("app"))
	assert.NoError(t, ValidateBinaryName("net_utils-2"))

	assert.Error(t, ValidateBinaryName(""))
	assert.Error(t, ValidateBinaryName(strings.Repeat("a", 32)))
	assert.Error(t, ValidateBinaryName("app/../etc"))
	assert.Error(t, ValidateBinaryName("app name"))
	assert.Error(t, ValidateBinaryName("app\x00"))

	// Exactly at the bound is fine.
	assert.NoError(t, ValidateBinaryName(strings.Repeat("a", 31)))
}

func TestValidateRequesterID(t *testing.T) {
	assert.NoError(t, ValidateRequesterID(0))
	assert.NoError(t, ValidateRequesterID(1234))
	assert.Error(t, ValidateRequesterID(-1))
}

func TestValidateVersion(t *testing.T) {
	assert.NoError(t, ValidateVersion(0))
	assert.NoError(t, ValidateVersion(7))
	assert.Error(t, ValidateVersion(-3))
}
