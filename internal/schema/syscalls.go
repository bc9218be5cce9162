package schema

import (
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// OS is an implementation wrapping operating system functions.
type OS struct{}

// Remove wraps around [os.Remove].
func (*OS) Remove(name string) error {
	return os.Remove(name)
}

// ReadDir wraps around [os.ReadDir].
func (*OS) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// OpenFile wraps around [os.OpenFile].
func (*OS) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Truncate wraps around [os.Truncate].
func (*OS) Truncate(name string, size int64) error {
	return os.Truncate(name, size)
}

// Unix is an implementation wrapping Unix operating system functions.
type Unix struct{}

// Statfs wraps around [unix.Statfs].
func (*Unix) Statfs(path string, buf *unix.Statfs_t) error {
	return unix.Statfs(path, buf)
}

// Stat wraps around [unix.Stat].
func (*Unix) Stat(path string, stat *unix.Stat_t) error {
	return unix.Stat(path, stat)
}

// Exec is an implementation wrapping external command execution.
type Exec struct{}

// Output runs the named program and returns its standard output. On a
// non-zero exit the returned error is an [*exec.ExitError] carrying stderr.
func (*Exec) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}
