package domain

import (
	"fmt"
	"strings"
)

// Deduction is a set of voluntary deductions stored as bit flags
type Deduction uint8

const (
	DeductionNone       Deduction = 0
	DeductionPension    Deduction = 1 << 0
	DeductionBikeScheme Deduction = 1 << 1
)

var deductionNames = []struct {
	flag Deduction
	name string
}{
	{DeductionPension, "pension"},
	{DeductionBikeScheme, "bike_scheme"},
}

// Has reports whether every flag in d is set. DeductionNone is the empty set
// and is never reported as present.
func (s Deduction) Has(d Deduction) bool {
	return d != DeductionNone && s&d == d
}

// IsNone returns true when no deduction is active
func (s Deduction) IsNone() bool {
	return s == DeductionNone
}

// Flags returns the individual active flags in declaration order
func (s Deduction) Flags() []Deduction {
	flags := make([]Deduction, 0, len(deductionNames))
	for _, dn := range deductionNames {
		if s.Has(dn.flag) {
			flags = append(flags, dn.flag)
		}
	}
	return flags
}

func (s Deduction) String() string {
	if s.IsNone() {
		return "none"
	}
	names := make([]string, 0, len(deductionNames))
	for _, dn := range deductionNames {
		if s.Has(dn.flag) {
			names = append(names, dn.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseDeduction parses a comma separated list such as "pension,bike_scheme"
func ParseDeduction(s string) (Deduction, error) {
	var result Deduction
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || part == "none" {
			continue
		}
		found := false
		for _, dn := range deductionNames {
			if dn.name == part || strings.ReplaceAll(dn.name, "_", "") == part {
				result |= dn.flag
				found = true
				break
			}
		}
		if !found {
			return DeductionNone, fmt.Errorf("%w: unknown deduction %q", ErrInvalidArgument, part)
		}
	}
	return result, nil
}
