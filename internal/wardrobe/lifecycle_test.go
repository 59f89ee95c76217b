package wardrobe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/omara/internal/model"
)

const twoDays = 2 * 24 * time.Hour

func ms(v int64) time.Time { return time.UnixMilli(v) }

func item(id string) model.ClothingItem {
	return model.ClothingItem{ID: id, Name: "item " + id, Availability: model.Available()}
}

func laundryItem(id string, until int64) model.ClothingItem {
	it := item(id)
	it.Availability = model.InLaundryUntil(ms(until))
	return it
}

func deadline(t *testing.T, it model.ClothingItem) int64 {
	t.Helper()
	until, ok := it.Availability.LaundryUntil()
	require.True(t, ok, "item %s has no laundry deadline", it.ID)
	return until.UnixMilli()
}

// assertCoupled checks that every item has a deadline exactly when it is in
// laundry.
func assertCoupled(t *testing.T, items []model.ClothingItem) {
	t.Helper()
	for _, it := range items {
		_, hasDeadline := it.Availability.LaundryUntil()
		assert.Equal(t, it.Status() == model.ItemStatusLaundry, hasDeadline, "item %s", it.ID)
	}
}

func TestSendToLaundryScenario(t *testing.T) {
	wardrobe := []model.ClothingItem{item("1")}

	wardrobe = SendToLaundry(wardrobe, "1", ms(0), twoDays)
	require.Equal(t, model.ItemStatusLaundry, wardrobe[0].Status())
	assert.Equal(t, int64(172800000), deadline(t, wardrobe[0]))

	after, changed := Sweep(wardrobe, ms(100000000))
	assert.Zero(t, changed)
	assert.Equal(t, wardrobe, after)

	after, changed = Sweep(wardrobe, ms(200000000))
	assert.Equal(t, 1, changed)
	assert.Equal(t, model.ItemStatusAvailable, after[0].Status())
	_, hasDeadline := after[0].Availability.LaundryUntil()
	assert.False(t, hasDeadline)
	assertCoupled(t, after)
}

func TestSendToLaundryAlreadyInLaundryKeepsDeadline(t *testing.T) {
	wardrobe := []model.ClothingItem{laundryItem("1", 500)}

	next := SendToLaundry(wardrobe, "1", ms(1000), twoDays)
	assert.Equal(t, int64(500), deadline(t, next[0]))
}

func TestSendToLaundryUnknownID(t *testing.T) {
	wardrobe := []model.ClothingItem{item("1")}
	next := SendToLaundry(wardrobe, "nope", ms(0), twoDays)
	assert.Equal(t, wardrobe, next)
}

func TestTransitionsDoNotModifyInput(t *testing.T) {
	wardrobe := []model.ClothingItem{item("1"), laundryItem("2", 10)}
	snapshot := append([]model.ClothingItem(nil), wardrobe...)

	SendToLaundry(wardrobe, "1", ms(0), twoDays)
	MarkClean(wardrobe, "2")
	Sweep(wardrobe, ms(1000))
	CommitWorn(wardrobe, []string{"1", "2"}, ms(0), twoDays)

	assert.Equal(t, snapshot, wardrobe)
}

func TestSendThenCleanRestoresAvailable(t *testing.T) {
	wardrobe := []model.ClothingItem{item("1")}

	next := MarkClean(SendToLaundry(wardrobe, "1", ms(0), twoDays), "1")
	assert.Equal(t, wardrobe, next)
	assertCoupled(t, next)
}

func TestMarkCleanBeforeDeadline(t *testing.T) {
	wardrobe := []model.ClothingItem{laundryItem("1", 1_000_000)}
	next := MarkClean(wardrobe, "1")
	assert.Equal(t, model.ItemStatusAvailable, next[0].Status())
}

func TestMarkCleanAvailableIsNoop(t *testing.T) {
	wardrobe := []model.ClothingItem{item("1")}
	assert.Equal(t, wardrobe, MarkClean(wardrobe, "1"))
}

func TestToggle(t *testing.T) {
	wardrobe := []model.ClothingItem{item("1")}

	wardrobe = Toggle(wardrobe, "1", ms(0), twoDays)
	assert.Equal(t, model.ItemStatusLaundry, wardrobe[0].Status())

	wardrobe = Toggle(wardrobe, "1", ms(0), twoDays)
	assert.Equal(t, model.ItemStatusAvailable, wardrobe[0].Status())
	assertCoupled(t, wardrobe)

	assert.Equal(t, wardrobe, Toggle(wardrobe, "missing", ms(0), twoDays))
}

func TestSweepIsPerItem(t *testing.T) {
	wardrobe := []model.ClothingItem{
		laundryItem("due", 100),
		laundryItem("boundary", 200),
		laundryItem("later", 300),
		item("clean"),
	}

	next, changed := Sweep(wardrobe, ms(200))
	assert.Equal(t, 1, changed)
	assert.Equal(t, model.ItemStatusAvailable, next[0].Status())
	assert.Equal(t, wardrobe[1], next[1], "deadline equal to now is not due")
	assert.Equal(t, wardrobe[2], next[2])
	assert.Equal(t, wardrobe[3], next[3])
	assertCoupled(t, next)
}

func TestSweepIdempotent(t *testing.T) {
	wardrobe := []model.ClothingItem{laundryItem("1", 100), laundryItem("2", 5000), item("3")}

	first, _ := Sweep(wardrobe, ms(1000))
	second, changed := Sweep(first, ms(1000))
	assert.Zero(t, changed)
	assert.Equal(t, first, second)
}

func TestCommitWornScenario(t *testing.T) {
	wardrobe := []model.ClothingItem{item("a"), laundryItem("b", 12345)}

	next := CommitWorn(wardrobe, []string{"a", "b"}, ms(0), twoDays)
	assert.Equal(t, model.ItemStatusLaundry, next[0].Status())
	assert.Equal(t, twoDays.Milliseconds(), deadline(t, next[0]))
	assert.Equal(t, wardrobe[1], next[1])
}

func TestCommitWornSharedDeadline(t *testing.T) {
	wardrobe := []model.ClothingItem{item("a"), item("b"), item("c"), item("d")}

	next := CommitWorn(wardrobe, []string{"a", "c", "d", "unknown"}, ms(42), twoDays)
	want := 42 + twoDays.Milliseconds()
	for _, i := range []int{0, 2, 3} {
		assert.Equal(t, want, deadline(t, next[i]))
	}
	assert.Equal(t, model.ItemStatusAvailable, next[1].Status())
	assertCoupled(t, next)
}

func TestCommitWornEmpty(t *testing.T) {
	wardrobe := []model.ClothingItem{item("a")}
	assert.Equal(t, wardrobe, CommitWorn(wardrobe, nil, ms(0), twoDays))
}

func TestAvailableAndFilterStatus(t *testing.T) {
	wardrobe := []model.ClothingItem{item("a"), laundryItem("b", 1), item("c")}

	avail := Available(wardrobe)
	require.Len(t, avail, 2)
	assert.Equal(t, "a", avail[0].ID)
	assert.Equal(t, "c", avail[1].ID)

	assert.Len(t, FilterStatus(wardrobe, model.ItemStatusLaundry), 1)
	assert.Len(t, FilterStatus(wardrobe, ""), 3)
}
