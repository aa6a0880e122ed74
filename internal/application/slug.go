package application

import "strings"

const maxSlugLength = 100

// Slugify lower-cases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen, trimming hyphens at both ends.
func Slugify(s string) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte('-')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}
	out := b.String()
	if len(out) > maxSlugLength {
		out = strings.TrimRight(out[:maxSlugLength], "-")
	}
	return out
}

// slugFor returns the explicit slug when given, else one derived from title.
func slugFor(explicit *string, title string) (string, error) {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return strings.TrimSpace(*explicit), nil
	}
	slug := Slugify(title)
	if slug == "" {
		return "", ErrInvalidSlug
	}
	return slug, nil
}
