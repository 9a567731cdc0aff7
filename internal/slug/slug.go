// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from titles and
// names, plus collision resolution against an existing sibling set.
package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// maxSuffix caps the numeric suffix search. The loop is practically
// unbounded in real data; the cap turns a pathological sibling set into a
// loud error instead of an endless scan.
const maxSuffix = 10000

// ErrExhausted is returned when no unique suffix exists below the cap.
var ErrExhausted = errors.New("slug: suffix space exhausted")

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Unique resolves base against taken, a set of sibling slugs sharing the
// base prefix (the entity's own slug already excluded by the caller).
// The base itself wins when free; otherwise base-1, base-2, … up to the
// suffix cap. Callers fetch taken with one prefix query so uniqueness
// costs a single round-trip regardless of contention.
func Unique(base string, taken []string) (string, error) {
	inUse := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		inUse[s] = struct{}{}
	}

	if _, ok := inUse[base]; !ok {
		return base, nil
	}
	for i := 1; i <= maxSuffix; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := inUse[candidate]; !ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: base %q", ErrExhausted, base)
}
