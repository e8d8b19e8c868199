// Package changename turns user-supplied change names into the kebab-case
// directory names used under tdd/changes.
package changename

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxRunes bounds the length of a change directory name
const MaxRunes = 64

// reserved names collide with directories the tool manages itself
var reserved = map[string]bool{
	"archive": true,
}

// Slugify normalises name to lowercase kebab-case: NFKC folding, accents
// stripped, anything outside a-z0-9 collapsed to a single hyphen.
func Slugify(name string) string {
	folded := norm.NFKC.String(name)
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), folded)
	if err == nil {
		folded = stripped
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteRune('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if rs := []rune(slug); len(rs) > MaxRunes {
		slug = strings.TrimRight(string(rs[:MaxRunes]), "-")
	}
	return slug
}

// Normalize returns the slug for name or an error when nothing usable remains
func Normalize(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("change name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return "", fmt.Errorf("change name %q has no usable characters (allowed: a-z, 0-9, -)", name)
	}
	if reserved[slug] {
		return "", fmt.Errorf("change name %q is reserved", slug)
	}
	return slug, nil
}
