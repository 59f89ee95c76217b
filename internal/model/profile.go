package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ColorInfo is one named color of a palette.
type ColorInfo struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// UserProfile is the stylistic context used for suggestions.
type UserProfile struct {
	SkinTone        string      `json:"skin_tone"`
	ColorPalette    []ColorInfo `json:"color_palette"`
	PreferredStyles []string    `json:"preferred_styles"`
	Region          string      `json:"region"`
}

// Regions offered to the user. Any non-empty region is accepted.
var Regions = []string{"US", "UK", "India", "Japan", "Brazil"}

// DefaultProfile returns the profile used before the user saves one.
func DefaultProfile() UserProfile {
	return UserProfile{
		SkinTone:        "",
		ColorPalette:    []ColorInfo{},
		PreferredStyles: []string{"casual", "chic"},
		Region:          "US",
	}
}

var hexColor = regexp.MustCompile(`^#([0-9A-Fa-f]{3}){1,2}$`)

// ValidateColor checks a palette entry: a non-empty name and a 3 or 6 digit
// hex code with a leading '#'.
func ValidateColor(c ColorInfo) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("color name required")
	}
	if !hexColor.MatchString(c.Hex) {
		return fmt.Errorf("invalid hex color %q (expected #RGB or #RRGGBB)", c.Hex)
	}
	return nil
}

// Normalize validates the profile and returns a cleaned copy: hex codes
// upper-cased, styles trimmed with empty entries dropped, nil slices
// replaced by empty ones.
func (p UserProfile) Normalize() (UserProfile, error) {
	if strings.TrimSpace(p.Region) == "" {
		return UserProfile{}, errors.New("region required")
	}

	out := UserProfile{
		SkinTone:        strings.TrimSpace(p.SkinTone),
		ColorPalette:    make([]ColorInfo, 0, len(p.ColorPalette)),
		PreferredStyles: make([]string, 0, len(p.PreferredStyles)),
		Region:          strings.TrimSpace(p.Region),
	}
	for _, c := range p.ColorPalette {
		if err := ValidateColor(c); err != nil {
			return UserProfile{}, err
		}
		out.ColorPalette = append(out.ColorPalette, ColorInfo{
			Name: strings.TrimSpace(c.Name),
			Hex:  strings.ToUpper(c.Hex),
		})
	}
	for _, s := range p.PreferredStyles {
		if s = strings.TrimSpace(s); s != "" {
			out.PreferredStyles = append(out.PreferredStyles, s)
		}
	}
	return out, nil
}
