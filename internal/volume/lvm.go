package volume

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/desertwitch/piso/internal/schema"
)

const (
	// DefaultThinPool is the name of the thin pool inside the volume group
	// that all drives are provisioned from.
	DefaultThinPool = "thinpool"

	// DevPath is the directory holding the volume group device nodes.
	DevPath = "/dev"
)

type execProvider interface {
	Output(name string, args ...string) ([]byte, error)
}

// lvReport is a single logical volume of an lvs JSON report. All values are
// reported as strings, sizes with a trailing unit.
type lvReport struct {
	LVName      string `json:"lv_name"`
	VGName      string `json:"vg_name"`
	LVAttr      string `json:"lv_attr"`
	LVSize      string `json:"lv_size"`
	PoolLV      string `json:"pool_lv"`
	DataPercent string `json:"data_percent"`
}

// vgReport is a single volume group of a vgs JSON report.
type vgReport struct {
	VGName string `json:"vg_name"`
	VGSize string `json:"vg_size"`
	VGFree string `json:"vg_free"`
}

type lvsOutput struct {
	Report []struct {
		LV []lvReport `json:"lv"`
	} `json:"report"`
}

type vgsOutput struct {
	Report []struct {
		VG []vgReport `json:"vg"`
	} `json:"report"`
}

// LVMStore is a [Store] provisioning every volume as a thin logical volume
// from a thin pool of an LVM volume group.
type LVMStore struct {
	volumeGroup string
	thinPool    string
	execHandler execProvider
}

// NewLVMStore returns a pointer to a new [LVMStore]. An empty thin pool name
// selects [DefaultThinPool].
func NewLVMStore(volumeGroup string, thinPool string, execHandler execProvider) *LVMStore {
	if thinPool == "" {
		thinPool = DefaultThinPool
	}

	return &LVMStore{
		volumeGroup: volumeGroup,
		thinPool:    thinPool,
		execHandler: execHandler,
	}
}

// CreateVolume creates a new thin volume and returns it as reported by lvs.
func (s *LVMStore) CreateVolume(size uint64) (schema.VirtualDrive, error) {
	if size == 0 {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-lvm-create) %w", ErrInvalidSize)
	}

	existing, err := s.ListVolumes()
	if err != nil {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-lvm-create) failed to list: %w", err)
	}
	name := nextDriveName(existing)

	if _, err := s.run("lvcreate",
		"-V", strconv.FormatUint(size, 10)+"B",
		"-T", s.volumeGroup+"/"+s.thinPool,
		"-n", name,
	); err != nil {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-lvm-create) %w", err)
	}

	created, err := s.ListVolumes()
	if err != nil {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-lvm-create) failed to list: %w", err)
	}

	idx := slices.IndexFunc(created, func(d schema.VirtualDrive) bool {
		return d.Name == name
	})
	if idx < 0 {
		return schema.VirtualDrive{}, fmt.Errorf("(volume-lvm-create) %w: new volume %s not reported", ErrVolumeSubsystem, name)
	}

	return created[idx], nil
}

// DestroyVolume removes the thin volume backing the drive.
func (s *LVMStore) DestroyVolume(drive schema.VirtualDrive) error {
	if _, err := s.run("lvremove", "-f", s.volumeGroup+"/"+drive.Name); err != nil {
		return fmt.Errorf("(volume-lvm-destroy) %w", err)
	}

	return nil
}

// ListVolumes returns all thin volumes of the thin pool, ordered by their
// drive index. The thin pool itself and foreign volumes are not included.
func (s *LVMStore) ListVolumes() ([]schema.VirtualDrive, error) {
	out, err := s.run("lvs", "--reportformat", "json", "--units", "B")
	if err != nil {
		return nil, fmt.Errorf("(volume-lvm-list) %w", err)
	}

	var report lvsOutput
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("(volume-lvm-list) failed to parse lvs output: %w: %w", ErrVolumeSubsystem, err)
	}

	drives := []schema.VirtualDrive{}

	for _, r := range report.Report {
		for _, lv := range r.LV {
			if lv.VGName != s.volumeGroup || lv.PoolLV != s.thinPool {
				continue
			}

			size, err := parseReportSize(lv.LVSize)
			if err != nil {
				return nil, fmt.Errorf("(volume-lvm-list) %w: %w", ErrVolumeSubsystem, err)
			}

			drives = append(drives, schema.VirtualDrive{
				Name:     lv.LVName,
				Path:     filepath.Join(DevPath, lv.VGName, lv.LVName),
				Capacity: size,
				Used:     parseUsed(size, lv.DataPercent),
			})
		}
	}

	slices.SortFunc(drives, compareDrives)

	return drives, nil
}

// TotalCapacity returns the size of the volume group.
func (s *LVMStore) TotalCapacity() (uint64, error) {
	out, err := s.run("vgs", "--reportformat", "json", "--units", "B")
	if err != nil {
		return 0, fmt.Errorf("(volume-lvm-capacity) %w", err)
	}

	var report vgsOutput
	if err := json.Unmarshal(out, &report); err != nil {
		return 0, fmt.Errorf("(volume-lvm-capacity) failed to parse vgs output: %w: %w", ErrVolumeSubsystem, err)
	}

	for _, r := range report.Report {
		for _, vg := range r.VG {
			if vg.VGName != s.volumeGroup {
				continue
			}

			size, err := parseReportSize(vg.VGSize)
			if err != nil {
				return 0, fmt.Errorf("(volume-lvm-capacity) %w: %w", ErrVolumeSubsystem, err)
			}

			return size, nil
		}
	}

	return 0, fmt.Errorf("(volume-lvm-capacity) %w: no report for vg %s", ErrVolumeSubsystem, s.volumeGroup)
}

// run executes an LVM command, folding its stderr into the returned error.
func (s *LVMStore) run(name string, args ...string) ([]byte, error) {
	out, err := s.execHandler.Output(name, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s failed: %s", ErrVolumeSubsystem, name, strings.TrimSpace(string(exitErr.Stderr)))
		}

		return nil, fmt.Errorf("%w: %s failed: %w", ErrVolumeSubsystem, name, err)
	}

	return out, nil
}

// parseReportSize parses a report size such as "1073741824B".
func parseReportSize(s string) (uint64, error) {
	size, err := strconv.ParseUint(strings.TrimRight(strings.TrimSpace(s), "B"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse size %q: %w", s, err)
	}

	return size, nil
}

// parseUsed returns the bytes backed by data of a thin volume, derived from
// its data percentage. Unparseable percentages count as nothing used.
func parseUsed(size uint64, dataPercent string) uint64 {
	pct, err := strconv.ParseFloat(strings.TrimSpace(dataPercent), 64)
	if err != nil || pct <= 0 {
		return 0
	}

	return uint64(float64(size) * min(pct, 100) / 100) //nolint:mnd
}
