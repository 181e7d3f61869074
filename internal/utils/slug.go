package utils

import (
	"strconv" // Base-36 id token
	"strings" // String building
	"unicode" // Rune classes

	"golang.org/x/text/runes"        // Rune filtering transformer
	"golang.org/x/text/transform"    // Transformer chaining
	"golang.org/x/text/unicode/norm" // Unicode normalization forms
)

// fallbackSlug is used when a title has no usable characters
const fallbackSlug = "product"

// Slugify lower-cases s, strips accents and collapses every run of
// non-alphanumeric characters into a single dash
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC) // Decompose then drop combining marks
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s // Keep the raw input if folding fails
	}
	var b strings.Builder
	dash := false // Pending separator
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-') // Emit one dash per run
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// ProductSlug derives the public slug of a product from its title and row id
func ProductSlug(title string, id uint) string {
	return Slugify(title) + "-" + strconv.FormatUint(uint64(id), 36) // Id token keeps slugs unique
}

// UniqueSlugs slugifies every name, suffixing repeats with -2, -3 and so on
func UniqueSlugs(names []string) []string {
	seen := make(map[string]int, len(names)) // Occurrences per base slug
	out := make([]string, 0, len(names))
	for _, name := range names {
		base := Slugify(name)
		seen[base]++
		if n := seen[base]; n > 1 {
			out = append(out, base+"-"+strconv.Itoa(n)) // Disambiguate duplicate names
			continue
		}
		out = append(out, base)
	}
	return out
}
