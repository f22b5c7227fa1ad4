// Package slug derives stable URL-safe identifiers from business names.
package slug

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxLength bounds generated slugs so they stay usable in URLs and indexes.
const MaxLength = 60

// accentFold maps a fixed set of accented Latin characters to ASCII.
// This is deliberately not a general Unicode transliteration: characters
// outside the table pass through unchanged and get folded into hyphens later.
var accentFold = strings.NewReplacer(
	"à", "a", "á", "a", "ä", "a", "â", "a",
	"è", "e", "é", "e", "ë", "e", "ê", "e",
	"ì", "i", "í", "i", "ï", "i", "î", "i",
	"ò", "o", "ó", "o", "ö", "o", "ô", "o",
	"ù", "u", "ú", "u", "ü", "u", "û", "u",
	"ñ", "n", "ç", "c",
)

// Make converts a business name into a URL-safe slug matching
// ^[a-z0-9]+(-[a-z0-9]+)*$ with length <= MaxLength. An input with no
// slug-safe characters yields ""; callers must treat that as invalid and
// fall back to another identifier. Uniqueness is not handled here.
func Make(name string) string {
	s := strings.ToLower(name)
	s = strings.TrimSpace(s)
	s = accentFold.Replace(s)
	s = strings.ReplaceAll(s, "&", "and")

	// Collapse every run of non [a-z0-9] characters into a single hyphen.
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	out := b.String()
	if len(out) > MaxLength {
		out = out[:MaxLength]
		out = strings.TrimRight(out, "-")
	}
	return out
}

// MakeUnique builds a slug for name and disambiguates collisions
// deterministically. The base slug is tried first; on collision the folded
// external id is appended, and as a last resort a numeric counter. An empty
// base (name with no slug-safe characters) falls back to the external id.
func MakeUnique(name, externalID string, exists func(string) (bool, error)) (string, error) {
	base := Make(name)
	idPart := Make(externalID)
	if base == "" {
		base = idPart
	}
	if base == "" {
		return "", fmt.Errorf("cannot derive slug for %q (external id %q)", name, externalID)
	}

	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	candidate := withSuffix(base, idPart)
	taken, err = exists(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}

	for i := 2; ; i++ {
		counterSuffix := strconv.Itoa(i)
		if idPart != "" {
			counterSuffix = idPart + "-" + counterSuffix
		}
		candidate = withSuffix(base, counterSuffix)
		taken, err = exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// withSuffix appends "-suffix" to base, shortening base so the result still
// fits MaxLength.
func withSuffix(base, suffix string) string {
	if suffix == "" {
		return base
	}
	room := MaxLength - len(suffix) - 1
	if room < 1 {
		room = 1
	}
	if len(base) > room {
		base = strings.TrimRight(base[:room], "-")
	}
	return base + "-" + suffix
}
