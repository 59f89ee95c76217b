package wardrobe

import (
	"errors"
	"slices"
	"strings"

	"github.com/erazemk/omara/internal/model"
)

// MinOutfitItems is the number of available items an outfit needs.
const MinOutfitItems = 2

// ErrNotEnoughItems means the wardrobe has too few available items to
// suggest an outfit.
var ErrNotEnoughItems = errors.New("not enough available items in wardrobe to create an outfit")

// OutfitCandidates returns the available items, or ErrNotEnoughItems when
// there are fewer than MinOutfitItems of them.
func OutfitCandidates(items []model.ClothingItem) ([]model.ClothingItem, error) {
	avail := Available(items)
	if len(avail) < MinOutfitItems {
		return nil, ErrNotEnoughItems
	}
	return avail, nil
}

// outfitRoles is the display order of the roles a suggestion fills.
var outfitRoles = []string{"top", "bottom", "shoes", "accessory"}

// ResolveOutfit maps the role/name pairs of a suggestion back to available
// items by case-insensitive name. Known roles come first in outfitRoles
// order, then any other roles alphabetically. Names that match nothing are
// dropped and each item appears at most once.
func ResolveOutfit(items []model.ClothingItem, outfit map[string]string) []model.ClothingItem {
	roles := make([]string, 0, len(outfit))
	for role := range outfit {
		roles = append(roles, role)
	}
	slices.SortFunc(roles, func(a, b string) int {
		ra, rb := roleRank(a), roleRank(b)
		if ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})

	avail := Available(items)
	seen := make(map[string]bool)
	var out []model.ClothingItem
	for _, role := range roles {
		name := strings.TrimSpace(outfit[role])
		if name == "" {
			continue
		}
		for _, it := range avail {
			if strings.EqualFold(it.Name, name) {
				if !seen[it.ID] {
					seen[it.ID] = true
					out = append(out, it)
				}
				break
			}
		}
	}
	return out
}

func roleRank(role string) int {
	if i := slices.Index(outfitRoles, strings.ToLower(role)); i >= 0 {
		return i
	}
	return len(outfitRoles)
}
