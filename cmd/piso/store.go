package main

import (
	"fmt"
	"os"

	"github.com/desertwitch/piso/internal/configuration"
	"github.com/desertwitch/piso/internal/volume"
	"golang.org/x/sys/unix"
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

type execProvider interface {
	Output(name string, args ...string) ([]byte, error)
}

// newStore returns the [volume.Store] of the configured backend.
func newStore(config *configuration.AppConfiguration, osHandler osProvider, unixHandler unixProvider, execHandler execProvider) (volume.Store, error) { //nolint:ireturn
	switch config.Backend {
	case volume.BackendFile:
		var st unix.Stat_t
		if err := unixHandler.Stat(config.PoolPath, &st); err != nil {
			return nil, fmt.Errorf("(main-store) pool %s is not accessible: %w", config.PoolPath, err)
		}

		return volume.NewFileStore(config.PoolPath, osHandler, unixHandler), nil

	case volume.BackendLVM:
		return volume.NewLVMStore(config.VolumeGroup, config.ThinPool, execHandler), nil

	case volume.BackendMemory:
		return volume.NewMemoryStore(config.MemoryCapacity), nil

	default:
		return nil, fmt.Errorf("(main-store) %w: %s", volume.ErrUnknownBackend, config.Backend)
	}
}
