// AngelaMos | 2026
// slug.go

package tenant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fitsyy/gym-backend/internal/core"
)

const (
	MaxSlugLength = 40
	MaxNameLength = 100
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var turkishFold = strings.NewReplacer(
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// Slugify turns a display name into a slug candidate. The result may still
// be taken or empty; callers validate it.
func Slugify(name string) string {
	s := strings.ToLower(turkishFold.Replace(name))

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > MaxSlugLength {
		out = strings.TrimRight(out[:MaxSlugLength], "-")
	}
	return out
}

func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required: %w", core.ErrInvalidInput)
	}
	if len(slug) > MaxSlugLength {
		return fmt.Errorf(
			"slug must be at most %d characters: %w",
			MaxSlugLength,
			core.ErrInvalidInput,
		)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf(
			"slug may contain only lowercase letters, digits and single dashes: %w",
			core.ErrInvalidInput,
		)
	}
	return nil
}

func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required: %w", core.ErrInvalidInput)
	}
	if len([]rune(name)) > MaxNameLength {
		return "", fmt.Errorf(
			"name must be at most %d characters: %w",
			MaxNameLength,
			core.ErrInvalidInput,
		)
	}
	return name, nil
}
