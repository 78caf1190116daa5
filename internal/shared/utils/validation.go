// Package utils provides validation helpers shared across the binary manager.
package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/updateos/binmgr/internal/shared/types"
)

// BinaryNamePattern allows alphanumeric, hyphens, underscores. Slashes and
// dots are excluded so a name can never escape the storage directory.
var BinaryNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateBinaryName checks a binary name against the naming contract.
// Over-long names are rejected, never truncated.
func ValidateBinaryName(name string) error {
	if name == "" {
		return fmt.Errorf("binary name is required")
	}
	if len(name) > types.MaxBinaryNameLen {
		return fmt.Errorf("binary name exceeds %d bytes", types.MaxBinaryNameLen)
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("binary name contains invalid characters")
	}
	if !BinaryNamePattern.MatchString(name) {
		return fmt.Errorf("binary name contains invalid characters (only alphanumeric, hyphens, and underscores allowed)")
	}
	return nil
}

// ValidateRequesterID checks a requester process identity.
func ValidateRequesterID(id int) error {
	if id < 0 {
		return fmt.Errorf("requester id must be non-negative, got %d", id)
	}
	return nil
}

// ValidateVersion checks a binary version number.
func ValidateVersion(version int) error {
	if version < 0 {
		return fmt.Errorf("version must be non-negative, got %d", version)
	}
	return nil
}
