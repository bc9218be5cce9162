package controller

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/desertwitch/piso/internal/menu"
	"github.com/desertwitch/piso/internal/schema"
	"github.com/desertwitch/piso/internal/volume"
	"github.com/dustin/go-humanize"
)

const (
	actionBack = iota
	actionRemove
)

//nolint:gochecknoglobals
var driveActions = []string{"Back", "Remove drive"}

// NewDriveItem is the entry creating a new drive of the default size.
type NewDriveItem struct {
	controller *Controller
}

// OnSelect creates a drive and moves the cursor onto it. Failures end up in
// the controller status line. The event is never consumed, so the list view
// stays on screen either way.
func (n *NewDriveItem) OnSelect() bool {
	c := n.controller

	h, err := c.AddDrive(c.opts.DefaultDriveSize)
	if err != nil {
		c.status = statusFor(err)
		slog.Warn("Failed to create drive.",
			"size", humanize.IBytes(c.opts.DefaultDriveSize),
			"err", err,
		)

		return false
	}

	if idx := c.indexOf(h); idx >= 0 {
		c.cursor = idx
	}
	c.status = fmt.Sprintf("Created %s", h)

	return false
}

// OnNext does nothing.
func (*NewDriveItem) OnNext() bool {
	return false
}

// OnPrev does nothing.
func (*NewDriveItem) OnPrev() bool {
	return false
}

// Render draws the new drive screen with the size to be created and the
// space left in the pool.
func (n *NewDriveItem) Render() *menu.Bitmap {
	c := n.controller
	b := menu.NewBitmap(c.opts.Width, c.opts.Height)

	free := "?"
	if f, err := c.FreeCapacity(); err == nil {
		free = humanize.IBytes(f)
	}

	b.DrawText(0, 0, "New drive")
	b.InvertRow(0)
	b.DrawText(0, 2, "Size: "+humanize.IBytes(c.opts.DefaultDriveSize))
	b.DrawText(0, 3, "Free: "+free)

	return b
}

// Label returns the list row of the entry, with the size to be created.
func (n *NewDriveItem) Label() string {
	return fmt.Sprintf("+ New drive (%s)", humanize.IBytes(n.controller.opts.DefaultDriveSize))
}

// DriveItem is the entry of a single drive. Selecting it opens a detail
// screen offering to go back or to remove the drive.
type DriveItem struct {
	controller *Controller
	handle     schema.Handle

	open   bool
	action int
}

// Handle returns the handle of the drive behind the entry.
func (d *DriveItem) Handle() schema.Handle {
	return d.handle
}

// OnSelect opens the detail screen, or runs the highlighted action on it.
// Both actions leave the detail screen.
func (d *DriveItem) OnSelect() bool {
	if !d.open {
		d.open = true
		d.action = actionBack

		return true
	}

	action := d.action
	d.close()

	if action == actionRemove {
		c := d.controller
		if err := c.RemoveDrive(d.handle); err != nil {
			c.status = statusFor(err)
			slog.Error("Failed to remove drive.",
				"drive", d.handle,
				"err", err,
			)
		}
	}

	return false
}

// OnNext highlights the next action of the detail screen.
func (d *DriveItem) OnNext() bool {
	if !d.open || d.action >= len(driveActions)-1 {
		return false
	}
	d.action++

	return true
}

// OnPrev highlights the previous action of the detail screen.
func (d *DriveItem) OnPrev() bool {
	if !d.open || d.action <= 0 {
		return false
	}
	d.action--

	return true
}

// Render draws the detail screen of the drive.
func (d *DriveItem) Render() *menu.Bitmap {
	c := d.controller
	b := menu.NewBitmap(c.opts.Width, c.opts.Height)

	drive, ok := c.Drive(d.handle)
	if !ok {
		b.DrawText(0, 0, string(d.handle)+" (gone)")

		return b
	}

	b.DrawText(0, 0, drive.Name)
	b.InvertRow(0)
	b.DrawText(0, 1, "Size: "+humanize.IBytes(drive.Capacity))
	b.DrawText(0, 2, "Used: "+humanize.IBytes(drive.Used))
	b.DrawText(0, 3, drive.Path)
	b.DrawText(0, 4, "ID: "+drive.Serial())

	for i, label := range driveActions {
		y := c.opts.Height - len(driveActions) + i
		b.DrawText(1, y, label)
		if d.open && i == d.action {
			b.InvertRow(y)
		}
	}

	return b
}

// Label returns the list row of the entry: name and capacity.
func (d *DriveItem) Label() string {
	drive, ok := d.controller.Drive(d.handle)
	if !ok {
		return string(d.handle)
	}

	return fmt.Sprintf("%s %s", drive.Name, humanize.IBytes(drive.Capacity))
}

func (d *DriveItem) close() {
	d.open = false
	d.action = actionBack
}

// statusFor returns a short message for the status line.
func statusFor(err error) string {
	switch {
	case errors.Is(err, volume.ErrInsufficientSpace):
		return "Not enough space"
	case errors.Is(err, volume.ErrInvalidSize):
		return "Invalid drive size"
	default:
		return "Volume error"
	}
}
