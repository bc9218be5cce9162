// Package volume implements the volume subsystem, which creates, lists and
// destroys the backing volumes of virtual drives. All persistent state of a
// drive lives behind a [Store].
package volume

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertwitch/piso/internal/schema"
)

const (
	// BackendFile selects the [FileStore].
	BackendFile = "file"

	// BackendLVM selects the [LVMStore].
	BackendLVM = "lvm"

	// BackendMemory selects the [MemoryStore].
	BackendMemory = "memory"

	// DrivePrefix is the name prefix of every volume created by a store.
	DrivePrefix = "drive"
)

// Store is the boundary to the authoritative volume state. Operations are
// synchronous and either succeed or fail before returning.
type Store interface {
	CreateVolume(size uint64) (schema.VirtualDrive, error)
	DestroyVolume(drive schema.VirtualDrive) error
	ListVolumes() ([]schema.VirtualDrive, error)
	TotalCapacity() (uint64, error)
}

// driveIndex returns the numeric suffix of a drive name, or -1 for names not
// created by a store.
func driveIndex(name string) int {
	suffix, ok := strings.CutPrefix(name, DrivePrefix)
	if !ok {
		return -1
	}

	idx, err := strconv.Atoi(suffix)
	if err != nil || idx < 0 {
		return -1
	}

	return idx
}

// nextDriveName returns the next free drive name, one past the highest index
// currently in use.
func nextDriveName(drives []schema.VirtualDrive) string {
	next := 1

	for _, d := range drives {
		if idx := driveIndex(d.Name); idx >= next {
			next = idx + 1
		}
	}

	return fmt.Sprintf("%s%d", DrivePrefix, next)
}

// compareDrives orders drives by index, and by name for equal indices.
func compareDrives(a, b schema.VirtualDrive) int {
	ia, ib := driveIndex(a.Name), driveIndex(b.Name)
	if ia != ib {
		return ia - ib
	}

	return strings.Compare(a.Name, b.Name)
}
