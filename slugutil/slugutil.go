package slugutil

import (
	"fmt"

	"github.com/gosimple/slug"
)

// fallbackBase is used when a name normalizes to nothing, e.g. a name made
// entirely of punctuation.
const fallbackBase = "item"

// Base returns the transliterated, hyphenated ASCII form of name.
func Base(name string) string {
	base := slug.Make(name)
	if base == "" {
		base = fallbackBase
	}
	return base
}

// Unique derives a slug from name that is not taken according to exists.
// On collision it appends -1, -2, ... until a free candidate is found.
// Callers exclude the record being edited from the exists check.
func Unique(name string, exists func(string) bool) string {
	base := Base(name)
	if !exists(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !exists(candidate) {
			return candidate
		}
	}
}
