// Package menu implements the building blocks of the on-device menu: the
// [Item] capability set every navigable entry implements, and the [Bitmap]
// display buffer entries render into.
package menu

// Item is a navigable entry of the hierarchical menu. The returned booleans
// report whether the event was consumed by the item.
type Item interface {
	Render() *Bitmap
	OnSelect() bool
	OnNext() bool
	OnPrev() bool
}

// Labeled is an [Item] that can describe itself in a single list row.
type Labeled interface {
	Item
	Label() string
}

// LabelOf returns the list row of an item, falling back to a placeholder for
// items that do not implement [Labeled].
func LabelOf(item Item) string {
	if l, ok := item.(Labeled); ok {
		return l.Label()
	}

	return "?"
}
