package wardrobe

import (
	"time"

	"github.com/erazemk/omara/internal/model"
)

// The transitions below never modify their input. They return a new slice
// whenever an item changes and the input slice otherwise.

// SendToLaundry moves the available item id to laundry until now+d. An item
// already in laundry keeps its deadline; an unknown id changes nothing.
func SendToLaundry(items []model.ClothingItem, id string, now time.Time, d time.Duration) []model.ClothingItem {
	return CommitWorn(items, []string{id}, now, d)
}

// MarkClean returns the laundry item id to available regardless of its
// deadline.
func MarkClean(items []model.ClothingItem, id string) []model.ClothingItem {
	return replace(items, func(it model.ClothingItem) (model.ClothingItem, bool) {
		if it.ID != id || !it.Availability.InLaundry() {
			return it, false
		}
		it.Availability = model.Available()
		return it, true
	})
}

// Toggle sends an available item to laundry and marks a laundry item clean.
func Toggle(items []model.ClothingItem, id string, now time.Time, d time.Duration) []model.ClothingItem {
	it, ok := Find(items, id)
	if !ok {
		return items
	}
	if it.Availability.InLaundry() {
		return MarkClean(items, id)
	}
	return SendToLaundry(items, id, now, d)
}

// Sweep returns every laundry item whose deadline has passed to available.
// The result is decided per item by its own deadline. changed is the number
// of items that reverted.
func Sweep(items []model.ClothingItem, now time.Time) (next []model.ClothingItem, changed int) {
	next = replace(items, func(it model.ClothingItem) (model.ClothingItem, bool) {
		if !it.Availability.DueBy(now) {
			return it, false
		}
		it.Availability = model.Available()
		changed++
		return it, true
	})
	return next, changed
}

// CommitWorn sends every listed available item to laundry with one shared
// deadline of now+d. Items already in laundry and unknown ids are ignored.
func CommitWorn(items []model.ClothingItem, ids []string, now time.Time, d time.Duration) []model.ClothingItem {
	worn := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		worn[id] = struct{}{}
	}
	until := now.Add(d)

	return replace(items, func(it model.ClothingItem) (model.ClothingItem, bool) {
		if _, ok := worn[it.ID]; !ok || it.Availability.InLaundry() {
			return it, false
		}
		it.Availability = model.InLaundryUntil(until)
		return it, true
	})
}

// Find returns the item with the given id.
func Find(items []model.ClothingItem, id string) (model.ClothingItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return model.ClothingItem{}, false
}

// Available returns the items that are not in laundry, in wardrobe order.
func Available(items []model.ClothingItem) []model.ClothingItem {
	out := make([]model.ClothingItem, 0, len(items))
	for _, it := range items {
		if !it.Availability.InLaundry() {
			out = append(out, it)
		}
	}
	return out
}

// FilterStatus returns the items with the given status; an empty status
// returns all items.
func FilterStatus(items []model.ClothingItem, status model.ItemStatus) []model.ClothingItem {
	out := make([]model.ClothingItem, 0, len(items))
	for _, it := range items {
		if status == "" || it.Status() == status {
			out = append(out, it)
		}
	}
	return out
}

// replace applies fn to every item and copies the slice on the first change.
func replace(items []model.ClothingItem, fn func(model.ClothingItem) (model.ClothingItem, bool)) []model.ClothingItem {
	var out []model.ClothingItem
	for i, it := range items {
		updated, changed := fn(it)
		if !changed {
			continue
		}
		if out == nil {
			out = make([]model.ClothingItem, len(items))
			copy(out, items)
		}
		out[i] = updated
	}
	if out == nil {
		return items
	}
	return out
}
