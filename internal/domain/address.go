package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// Address is a 20-byte account or asset identifier in 0x-hex form,
// normalized to lower case so equality checks are plain string compares.
type Address string

// ZeroAddress is the absent/uninitialized address.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// ParseAddress validates and normalizes a 0x-hex address.
func ParseAddress(v string) (Address, error) {
	trimmed := strings.TrimSpace(v)
	if !addressPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: address must match ^0x[a-fA-F0-9]{40}$", ErrInvalidInput)
	}
	return Address(strings.ToLower(trimmed)), nil
}

func (a Address) IsZero() bool {
	return a == "" || a == ZeroAddress
}

func (a Address) String() string {
	return string(a)
}
