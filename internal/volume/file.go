package volume

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/desertwitch/piso/internal/schema"
	"golang.org/x/sys/unix"
)

const (
	// ImageExtension is the file extension of drive images in a [FileStore].
	ImageExtension = ".img"

	// statBlockSize is the unit of [unix.Stat_t] allocated blocks.
	statBlockSize = 512

	imagePerms = 0o644
)

type osProvider interface {
	ReadDir(name string) ([]os.DirEntry, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Truncate(name string, size int64) error
	Remove(name string) error
}

type unixProvider interface {
	Statfs(path string, buf *unix.Statfs_t) error
	Stat(path string, stat *unix.Stat_t) error
}

// FileStore is a [Store] keeping every volume as a sparse image file inside
// a pool directory. The capacity of the store is that of the filesystem the
// pool directory lives on.
type FileStore struct {
	poolPath    string
	osHandler   osProvider
	unixHandler unixProvider
}

// NewFileStore returns a pointer to a new [FileStore] for the pool directory.
func NewFileStore(poolPath string, osHandler osProvider, unixHandler unixProvider) *FileStore {
	return &FileStore{
		poolPath:    poolPath,
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}
}

// CreateVolume creates a new sparse image of the given size. A partially
// created image is removed again when sizing it fails.
func (s *FileStore) CreateVolume(size uint64) (schema.VirtualDrive, error) {
	if size == 0 || size > math.MaxInt64 {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-file-create) %w: %d", ErrInvalidSize, size)
	}

	existing, err := s.ListVolumes()
	if err != nil {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-file-create) failed to list: %w", err)
	}

	name := nextDriveName(existing)
	imagePath := filepath.Join(s.poolPath, name+ImageExtension)

	f, err := s.osHandler.OpenFile(imagePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, imagePerms)
	if err != nil {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-file-create) failed to create image: %w: %w", ErrVolumeSubsystem, err)
	}
	if err := f.Close(); err != nil {
		slog.Warn("Failed to close newly created image.",
			"path", imagePath,
			"err", err,
		)
	}

	if err := s.osHandler.Truncate(imagePath, int64(size)); err != nil {
		if err := s.osHandler.Remove(imagePath); err != nil {
			slog.Error("Failed to remove partially created image.",
				"path", imagePath,
				"err", err,
			)
		}

		return schema.VirtualDrive{}, fmt.Errorf("(volume-file-create) failed to size image: %w: %w", ErrVolumeSubsystem, err)
	}

	return schema.VirtualDrive{
		Name:     name,
		Path:     imagePath,
		Capacity: size,
	}, nil
}

// DestroyVolume removes the image file backing the drive.
func (s *FileStore) DestroyVolume(drive schema.VirtualDrive) error {
	if err := s.osHandler.Remove(drive.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("(volume-file-destroy) %w: %s", ErrVolumeNotFound, drive.Name)
		}

		return fmt.Errorf("(volume-file-destroy) failed to remove image: %w: %w", ErrVolumeSubsystem, err)
	}

	return nil
}

// ListVolumes returns all images of the pool directory, ordered by their
// drive index. Entries that vanish while listing are skipped.
func (s *FileStore) ListVolumes() ([]schema.VirtualDrive, error) {
	entries, err := s.osHandler.ReadDir(s.poolPath)
	if err != nil {
		return nil, fmt.Errorf("(volume-file-list) failed to readdir: %w: %w", ErrVolumeSubsystem, err)
	}

	drives := []schema.VirtualDrive{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ImageExtension) {
			continue
		}

		imagePath := filepath.Join(s.poolPath, entry.Name())

		var st unix.Stat_t
		if err := s.unixHandler.Stat(imagePath, &st); err != nil {
			slog.Warn("Skipped image: failed to stat",
				"path", imagePath,
				"err", err,
			)

			continue
		}

		drives = append(drives, schema.VirtualDrive{
			Name:     strings.TrimSuffix(entry.Name(), ImageExtension),
			Path:     imagePath,
			Capacity: handleSize(st.Size),
			Used:     handleSize(int64(st.Blocks) * statBlockSize), //nolint:unconvert
		})
	}

	slices.SortFunc(drives, compareDrives)

	return drives, nil
}

// TotalCapacity returns the size of the filesystem holding the pool.
func (s *FileStore) TotalCapacity() (uint64, error) {
	var stat unix.Statfs_t
	if err := s.unixHandler.Statfs(s.poolPath, &stat); err != nil {
		return 0, fmt.Errorf("(volume-file-capacity) failed to statfs: %w: %w", ErrVolumeSubsystem, err)
	}

	return stat.Blocks * uint64(stat.Bsize), nil //nolint:gosec
}

func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
