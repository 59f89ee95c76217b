package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemStatus is the availability of a garment.
type ItemStatus string

// Item statuses.
const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusLaundry   ItemStatus = "laundry"
)

// Valid reports whether s is a known status.
func (s ItemStatus) Valid() bool {
	return s == ItemStatusAvailable || s == ItemStatusLaundry
}

// Availability couples an item's status with its laundry deadline. The zero
// value is available. A laundry deadline exists only while the item is in
// laundry, and the two cannot be set independently.
type Availability struct {
	laundry bool
	until   time.Time
}

// Available returns the available state.
func Available() Availability {
	return Availability{}
}

// InLaundryUntil returns the laundry state with the given deadline.
func InLaundryUntil(until time.Time) Availability {
	return Availability{laundry: true, until: until}
}

// Status returns the status name.
func (a Availability) Status() ItemStatus {
	if a.laundry {
		return ItemStatusLaundry
	}
	return ItemStatusAvailable
}

// InLaundry reports whether the item is in laundry.
func (a Availability) InLaundry() bool {
	return a.laundry
}

// LaundryUntil returns the deadline and whether one is set.
func (a Availability) LaundryUntil() (time.Time, bool) {
	return a.until, a.laundry
}

// DueBy reports whether a laundry item may revert to available at now.
// The deadline itself is not yet due.
func (a Availability) DueBy(now time.Time) bool {
	return a.laundry && now.After(a.until)
}

// ClothingItem is one garment in the wardrobe.
type ClothingItem struct {
	ID           string
	Name         string
	Type         string
	Color        string
	Pattern      string
	Style        string
	ImageURL     string
	Availability Availability
}

// Status is shorthand for Availability.Status.
func (i ClothingItem) Status() ItemStatus {
	return i.Availability.Status()
}

// clothingItemJSON is the stored and wire form. Deadlines are epoch
// milliseconds.
type clothingItemJSON struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Color        string     `json:"color"`
	Pattern      string     `json:"pattern"`
	Style        string     `json:"style"`
	ImageURL     string     `json:"image_url"`
	Status       ItemStatus `json:"status"`
	LaundryUntil *int64     `json:"laundry_until,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (i ClothingItem) MarshalJSON() ([]byte, error) {
	out := clothingItemJSON{
		ID:       i.ID,
		Name:     i.Name,
		Type:     i.Type,
		Color:    i.Color,
		Pattern:  i.Pattern,
		Style:    i.Style,
		ImageURL: i.ImageURL,
		Status:   i.Status(),
	}
	if until, ok := i.Availability.LaundryUntil(); ok {
		ms := until.UnixMilli()
		out.LaundryUntil = &ms
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. An available item carrying a
// deadline loses it; a laundry item without one is due immediately.
func (i *ClothingItem) UnmarshalJSON(data []byte) error {
	var in clothingItemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var avail Availability
	switch in.Status {
	case ItemStatusAvailable, "":
		avail = Available()
	case ItemStatusLaundry:
		// Older data may lack the deadline. Such items are treated as
		// overdue so the next sweep returns them instead of leaving them
		// in laundry forever.
		until := time.UnixMilli(0)
		if in.LaundryUntil != nil {
			until = time.UnixMilli(*in.LaundryUntil)
		}
		avail = InLaundryUntil(until)
	default:
		return fmt.Errorf("unknown item status %q", in.Status)
	}

	*i = ClothingItem{
		ID:           in.ID,
		Name:         in.Name,
		Type:         in.Type,
		Color:        in.Color,
		Pattern:      in.Pattern,
		Style:        in.Style,
		ImageURL:     in.ImageURL,
		Availability: avail,
	}
	return nil
}
