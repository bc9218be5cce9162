// Package controller implements the root of the drive management menu. The
// [Controller] owns the list of virtual drives, keeps it in sync with the
// volume store and presents it as a navigable [menu.Item].
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/desertwitch/piso/internal/menu"
	"github.com/desertwitch/piso/internal/schema"
	"github.com/desertwitch/piso/internal/volume"
	"github.com/dustin/go-humanize"
)

// Options are the tunables of a [Controller].
type Options struct {
	// DefaultDriveSize is the capacity of drives created from the menu.
	DefaultDriveSize uint64

	// ReservedSpace is pool capacity never handed out to drives.
	ReservedSpace uint64

	// Width and Height are the display dimensions, in cells. Heights below
	// the title, gauge, one entry and the status line are raised.
	Width  int
	Height int
}

// Controller is the single owner of the drive collection and the composite
// menu node presenting it. A process constructs exactly one and hands it to
// whatever runs the menu loop. It is not safe for concurrent use; all calls
// are expected from one event loop.
type Controller struct {
	store volume.Store
	opts  Options

	drives     []schema.VirtualDrive
	items      []menu.Item
	driveItems map[schema.Handle]*DriveItem
	newDrive   *NewDriveItem

	cursor  int
	focused bool
	status  string
}

// New returns a pointer to a new [Controller] without any drives. Callers
// populate it from the store with [Controller.RebuildFromVolumes].
func New(store volume.Store, opts Options) *Controller {
	if opts.Width <= 0 {
		opts.Width = menu.DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = menu.DefaultHeight
	}
	opts.Height = max(opts.Height, minHeight)

	c := &Controller{
		store:      store,
		opts:       opts,
		drives:     []schema.VirtualDrive{},
		driveItems: make(map[schema.Handle]*DriveItem),
	}
	c.newDrive = &NewDriveItem{controller: c}
	c.syncItems()

	return c
}

// Drives returns a copy of the ordered drive sequence.
func (c *Controller) Drives() []schema.VirtualDrive {
	return slices.Clone(c.drives)
}

// Drive resolves a handle into the drive it refers to. Handles of drives that
// were removed, or dropped during reconciliation, resolve to false.
func (c *Controller) Drive(h schema.Handle) (schema.VirtualDrive, bool) {
	idx := c.indexOf(h)
	if idx < 0 {
		return schema.VirtualDrive{}, false
	}

	return c.drives[idx], true
}

// AddDrive creates a new drive of the given size and appends it to the
// sequence. On any error the sequence is left untouched.
func (c *Controller) AddDrive(size uint64) (schema.Handle, error) {
	if size == 0 {
		return "", fmt.Errorf("(controller-add) %w: size must be greater than zero", volume.ErrInvalidSize)
	}

	free, err := c.FreeCapacity()
	if err != nil {
		return "", fmt.Errorf("(controller-add) failed to get free capacity: %w", err)
	}
	if size > free {
		return "", fmt.Errorf("(controller-add) %w: requested %s, free %s",
			volume.ErrInsufficientSpace, humanize.IBytes(size), humanize.IBytes(free))
	}

	drive, err := c.store.CreateVolume(size)
	if err != nil {
		return "", fmt.Errorf("(controller-add) %w", asSubsystemError(err))
	}

	c.drives = append(c.drives, drive)
	c.syncItems()

	slog.Info("Created drive.",
		"drive", drive.Name,
		"size", humanize.IBytes(drive.Capacity),
	)

	return drive.Handle(), nil
}

// RemoveDrive destroys the volume behind the handle and erases the drive from
// the sequence, keeping the order of the remaining drives. A handle that does
// not resolve is silently ignored.
func (c *Controller) RemoveDrive(h schema.Handle) error {
	idx := c.indexOf(h)
	if idx < 0 {
		return nil
	}
	drive := c.drives[idx]

	if err := c.store.DestroyVolume(drive); err != nil {
		if !errors.Is(err, volume.ErrVolumeNotFound) {
			return fmt.Errorf("(controller-remove) %w", asSubsystemError(err))
		}
		slog.Warn("Drive was already gone from the volume store.",
			"drive", drive.Name,
		)
	}

	if c.focused && c.cursor == idx {
		c.focused = false
	}
	c.drives = slices.Delete(c.drives, idx, idx+1)
	if c.cursor > idx {
		c.cursor--
	}
	c.syncItems()

	slog.Info("Removed drive.",
		"drive", drive.Name,
	)

	return nil
}

// RebuildFromVolumes replaces the drive sequence with the volumes reported by
// the store, in the order the store reports them. Drives whose identity
// changed behind our back are treated as new drives. Calling it repeatedly
// without changes to the store yields the same sequence.
func (c *Controller) RebuildFromVolumes() error {
	reported, err := c.store.ListVolumes()
	if err != nil {
		return fmt.Errorf("(controller-rebuild) %w", asSubsystemError(err))
	}

	var cursorHandle schema.Handle
	if c.cursor < len(c.drives) {
		cursorHandle = c.drives[c.cursor].Handle()
	}

	known := make(map[schema.Handle]schema.VirtualDrive, len(c.drives))
	for _, d := range c.drives {
		known[d.Handle()] = d
	}

	added, replaced := 0, 0
	for _, d := range reported {
		prev, ok := known[d.Handle()]
		switch {
		case !ok:
			added++
		case !prev.Equal(d):
			replaced++
			delete(c.driveItems, d.Handle())
			if d.Handle() == cursorHandle {
				c.focused = false
			}
		}
		delete(known, d.Handle())
	}

	c.drives = append(make([]schema.VirtualDrive, 0, len(reported)), reported...)

	switch idx := c.indexOf(cursorHandle); {
	case cursorHandle == "":
		c.cursor = len(c.drives)
	case idx >= 0:
		c.cursor = idx
	default:
		c.focused = false
	}
	c.syncItems()

	if added > 0 || replaced > 0 || len(known) > 0 {
		slog.Info("Rebuilt drives from volumes.",
			"drives", len(c.drives),
			"added", added,
			"replaced", replaced,
			"dropped", len(known),
		)
	}

	return nil
}

// Usage is a snapshot of the pool capacity and what is committed of it.
type Usage struct {
	Total     uint64
	Allocated uint64
	Reserved  uint64
}

// Free returns the capacity neither allocated to drives nor reserved.
func (u Usage) Free() uint64 {
	committed := u.Allocated + u.Reserved
	if committed >= u.Total {
		return 0
	}

	return u.Total - committed
}

// Fraction returns the committed share of the pool in [0, 1]. An empty pool
// reports zero.
func (u Usage) Fraction() float64 {
	if u.Total == 0 {
		return 0
	}

	return min(float64(u.Allocated+u.Reserved)/float64(u.Total), 1)
}

// Usage queries the store for the pool capacity once and returns it together
// with the committed capacity. On error the returned [Usage] still carries the
// allocated and reserved bytes, with a zero total.
func (c *Controller) Usage() (Usage, error) {
	usage := Usage{
		Allocated: c.allocated(),
		Reserved:  c.opts.ReservedSpace,
	}

	total, err := c.store.TotalCapacity()
	if err != nil {
		return usage, fmt.Errorf("(controller-usage) %w", asSubsystemError(err))
	}
	usage.Total = total

	return usage, nil
}

// FreeCapacity returns the pool capacity not yet committed to drives or
// reserved.
func (c *Controller) FreeCapacity() (uint64, error) {
	usage, err := c.Usage()
	if err != nil {
		return 0, err
	}

	return usage.Free(), nil
}

// PercentUsed returns the fraction of the pool capacity committed to drives
// and reserved space, in [0, 1]. It is recomputed on every call. An unknown
// or empty pool reports zero. It has no side effects, as it runs on every
// render.
func (c *Controller) PercentUsed() float64 {
	usage, err := c.Usage()
	if err != nil {
		return 0
	}

	return usage.Fraction()
}

// DefaultDriveSize returns the capacity of drives created from the menu.
func (c *Controller) DefaultDriveSize() uint64 {
	return c.opts.DefaultDriveSize
}

// Status returns the last user-facing message, such as a failed creation.
func (c *Controller) Status() string {
	return c.status
}

func (c *Controller) allocated() uint64 {
	var sum uint64
	for _, d := range c.drives {
		sum += d.Capacity
	}

	return sum
}

func (c *Controller) indexOf(h schema.Handle) int {
	if h == "" {
		return -1
	}

	return slices.IndexFunc(c.drives, func(d schema.VirtualDrive) bool {
		return d.Handle() == h
	})
}

// asSubsystemError tags store errors that are not already classified.
func asSubsystemError(err error) error {
	if errors.Is(err, volume.ErrVolumeSubsystem) ||
		errors.Is(err, volume.ErrInsufficientSpace) ||
		errors.Is(err, volume.ErrInvalidSize) {
		return err
	}

	return fmt.Errorf("%w: %w", volume.ErrVolumeSubsystem, err)
}
