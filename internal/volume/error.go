package volume

import "errors"

var (
	// ErrInsufficientSpace is an error that occurs when a requested volume is
	// larger than the remaining free capacity of the storage pool.
	ErrInsufficientSpace = errors.New("insufficient free space")

	// ErrVolumeSubsystem is an error that occurs when the underlying volume
	// subsystem fails to create, destroy or list volumes.
	ErrVolumeSubsystem = errors.New("volume subsystem failure")

	// ErrInvalidSize is an error that occurs when a volume of zero bytes is
	// requested.
	ErrInvalidSize = errors.New("invalid volume size")

	// ErrVolumeNotFound is an error that occurs when a volume is to be
	// destroyed, but the store does not know about it.
	ErrVolumeNotFound = errors.New("volume does not exist")

	// ErrUnknownBackend is an error that occurs when a store is requested for
	// a backend that is not supported.
	ErrUnknownBackend = errors.New("unknown volume backend")
)
