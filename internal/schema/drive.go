package schema

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Handle is an opaque, stable reference to a [VirtualDrive]. It stays valid
// across mutations of any drive collection and is resolved on demand, so a
// handle to a drive that no longer exists resolves to nothing instead of
// dangling.
type Handle string

const serialBytes = 6

// VirtualDrive is one emulated block device, as reported by a volume store.
type VirtualDrive struct {
	Name     string
	Path     string
	Capacity uint64
	Used     uint64
}

// Handle returns the stable [Handle] of the drive.
func (d VirtualDrive) Handle() Handle {
	return Handle(d.Name)
}

// Equal reports whether both drives refer to the same backing volume. The
// used bytes are not part of the identity, as they change with host writes.
func (d VirtualDrive) Equal(o VirtualDrive) bool {
	return d.Name == o.Name && d.Path == o.Path && d.Capacity == o.Capacity
}

// Fingerprint returns a digest over the identity of the drive, the same fields
// [VirtualDrive.Equal] compares. It is the source of [VirtualDrive.Serial].
func (d VirtualDrive) Fingerprint() [32]byte {
	h := blake3.New()

	var size [8]byte
	binary.BigEndian.PutUint64(size[:], d.Capacity)

	_, _ = h.Write([]byte(d.Name))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(d.Path))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(size[:])

	var sum [32]byte
	copy(sum[:], h.Sum(nil))

	return sum
}

// Serial returns a short identifier of the backing volume, derived from its
// [VirtualDrive.Fingerprint]. It stays the same across rescans and changes
// when a volume is recreated under the same name with another path or size.
func (d VirtualDrive) Serial() string {
	sum := d.Fingerprint()

	return hex.EncodeToString(sum[:serialBytes])
}
