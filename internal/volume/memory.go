package volume

import (
	"fmt"
	"path"
	"slices"
	"sync"

	"github.com/desertwitch/piso/internal/schema"
)

// MemoryStore is a [Store] that only keeps volumes in memory. It backs the
// demo mode and tests, and allows injecting subsystem failures.
type MemoryStore struct {
	sync.Mutex
	capacity uint64
	volumes  []schema.VirtualDrive

	// FailCreate, FailDestroy and FailList make the respective operation
	// fail with [ErrVolumeSubsystem] when set.
	FailCreate  bool
	FailDestroy bool
	FailList    bool
}

// NewMemoryStore returns a pointer to a new, empty [MemoryStore] with the
// given total capacity.
func NewMemoryStore(capacity uint64) *MemoryStore {
	return &MemoryStore{
		capacity: capacity,
	}
}

// CreateVolume appends a new volume of the given size. The store itself does
// not check for free space; the pool is thin-provisioned.
func (s *MemoryStore) CreateVolume(size uint64) (schema.VirtualDrive, error) {
	s.Lock()
	defer s.Unlock()

	if s.FailCreate {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-mem-create) %w", ErrVolumeSubsystem)
	}
	if size == 0 {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-mem-create) %w", ErrInvalidSize)
	}

	name := nextDriveName(s.volumes)
	drive := schema.VirtualDrive{
		Name:     name,
		Path:     path.Join("/dev/mem", name),
		Capacity: size,
	}
	s.volumes = append(s.volumes, drive)

	return drive, nil
}

// DestroyVolume removes the volume that is equal to the given drive.
func (s *MemoryStore) DestroyVolume(drive schema.VirtualDrive) error {
	s.Lock()
	defer s.Unlock()

	if s.FailDestroy {
		return fmt.Errorf("(volume-mem-destroy) %w", ErrVolumeSubsystem)
	}

	idx := slices.IndexFunc(s.volumes, drive.Equal)
	if idx < 0 {
		return fmt.Errorf("(volume-mem-destroy) %w: %s", ErrVolumeNotFound, drive.Name)
	}
	s.volumes = slices.Delete(s.volumes, idx, idx+1)

	return nil
}

// ListVolumes returns a copy of all volumes, in creation order.
func (s *MemoryStore) ListVolumes() ([]schema.VirtualDrive, error) {
	s.Lock()
	defer s.Unlock()

	if s.FailList {
		return nil, fmt.Errorf("(volume-mem-list) %w", ErrVolumeSubsystem)
	}

	return slices.Clone(s.volumes), nil
}

// TotalCapacity returns the capacity the store was created with.
func (s *MemoryStore) TotalCapacity() (uint64, error) {
	return s.capacity, nil
}

// Inject adds a volume out-of-band, simulating a change made by another
// program on the same pool.
func (s *MemoryStore) Inject(drive schema.VirtualDrive) {
	s.Lock()
	defer s.Unlock()

	s.volumes = append(s.volumes, drive)
}

// Eject removes a volume by name out-of-band.
func (s *MemoryStore) Eject(name string) {
	s.Lock()
	defer s.Unlock()

	s.volumes = slices.DeleteFunc(s.volumes, func(d schema.VirtualDrive) bool {
		return d.Name == name
	})
}
