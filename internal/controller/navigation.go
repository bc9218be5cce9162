package controller

import (
	"fmt"

	"github.com/desertwitch/piso/internal/menu"
	"github.com/desertwitch/piso/internal/schema"
)

const (
	listTitle = "Drives"

	// listChromeRows are the rows of the list view not used for entries:
	// title, capacity gauge and status line.
	listChromeRows = 3

	minHeight = listChromeRows + 1
)

// closer is implemented by items holding a sub-screen that can be left.
type closer interface {
	close()
}

// Items returns the navigable entries: one per drive, in drive order,
// followed by the new drive entry.
func (c *Controller) Items() []menu.Item {
	c.syncItems()

	items := make([]menu.Item, len(c.items))
	copy(items, c.items)

	return items
}

// Cursor returns the index of the entry under the cursor.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Focused reports whether the entry under the cursor holds the focus, in
// which case events and rendering are handed to it.
func (c *Controller) Focused() bool {
	return c.focused
}

// OnSelect selects the entry under the cursor. An entry consuming the event
// receives the focus. With an entry already focused, the event is passed on
// and the focus is released once the entry no longer consumes it.
func (c *Controller) OnSelect() bool {
	c.syncItems()
	c.status = ""

	item := c.items[c.cursor]

	if c.focused {
		if !item.OnSelect() {
			c.focused = false
		}

		return true
	}

	if item.OnSelect() {
		c.focused = true
	}

	return true
}

// OnNext moves the cursor to the next entry, or passes the event to the
// focused entry. The cursor stops at the last entry without wrapping; moving
// past it is not consumed.
func (c *Controller) OnNext() bool {
	c.syncItems()

	if c.focused {
		return c.items[c.cursor].OnNext()
	}

	if c.cursor >= len(c.items)-1 {
		return false
	}
	c.cursor++

	return true
}

// OnPrev moves the cursor to the previous entry, or passes the event to the
// focused entry. The cursor stops at the first entry without wrapping.
func (c *Controller) OnPrev() bool {
	c.syncItems()

	if c.focused {
		return c.items[c.cursor].OnPrev()
	}

	if c.cursor <= 0 {
		return false
	}
	c.cursor--

	return true
}

// Back releases the focus of the focused entry, returning to the list view.
func (c *Controller) Back() bool {
	if !c.focused {
		return false
	}

	c.syncItems()
	if cl, ok := c.items[c.cursor].(closer); ok {
		cl.close()
	}
	c.focused = false

	return true
}

// Render draws the focused entry, or the list of all entries when no entry
// holds the focus.
func (c *Controller) Render() *menu.Bitmap {
	c.syncItems()

	if c.focused {
		return c.items[c.cursor].Render()
	}

	b := menu.NewBitmap(c.opts.Width, c.opts.Height)

	used := c.PercentUsed()
	pct := fmt.Sprintf("%3.0f%%", used*100) //nolint:mnd
	b.DrawText(0, 0, listTitle)
	b.DrawText(c.opts.Width-len(pct), 0, pct)
	b.DrawGauge(1, used)

	rows := max(c.opts.Height-listChromeRows, 1)
	top := max(c.cursor-rows+1, 0)

	for row := range rows {
		idx := top + row
		if idx >= len(c.items) {
			break
		}

		y := row + 2 //nolint:mnd
		b.DrawText(1, y, menu.LabelOf(c.items[idx]))
		if idx == c.cursor {
			b.InvertRow(y)
		}
	}

	if c.status != "" {
		b.DrawText(0, c.opts.Height-1, c.status)
	}

	return b
}

// Label returns the list row of the controller inside a parent menu.
func (c *Controller) Label() string {
	return fmt.Sprintf("%s (%d)", listTitle, len(c.drives))
}

// syncItems keeps the entries in step with the drive sequence, reusing the
// entry of every drive that is still present. It never touches the drives.
func (c *Controller) syncItems() {
	items := make([]menu.Item, 0, len(c.drives)+1)
	live := make(map[schema.Handle]*DriveItem, len(c.drives))

	for _, d := range c.drives {
		h := d.Handle()

		item, ok := c.driveItems[h]
		if !ok {
			item = &DriveItem{controller: c, handle: h}
		}

		live[h] = item
		items = append(items, item)
	}

	c.items = append(items, c.newDrive)
	c.driveItems = live
	c.cursor = min(max(c.cursor, 0), len(c.items)-1)
}
