package configuration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/desertwitch/piso/internal/volume"
)

const (
	// DefaultConfigFile is the configuration file read when none is given.
	DefaultConfigFile = "/boot/config/piso.cfg"

	// DefaultPoolPath is the image directory of the file backend.
	DefaultPoolPath = "/var/lib/piso"

	// DefaultDriveSize is the capacity of drives created from the menu.
	DefaultDriveSize = 4 << 30

	// DefaultMemoryCapacity is the pool capacity of the memory backend.
	DefaultMemoryCapacity = 64 << 30

	// DefaultDisplayWidth and DefaultDisplayHeight match a 128x64 panel with
	// a 6x8 font.
	DefaultDisplayWidth  = 21
	DefaultDisplayHeight = 8

	// MinDisplayHeight fits the list title, capacity gauge, one entry and the
	// status line.
	MinDisplayHeight = 4

	SettingBackend          = "PISO_BACKEND"
	SettingPoolPath         = "PISO_POOL_PATH"
	SettingVolumeGroup      = "PISO_VOLUME_GROUP"
	SettingThinPool         = "PISO_THIN_POOL"
	SettingDefaultDriveSize = "PISO_DEFAULT_DRIVE_SIZE"
	SettingReservedSpace    = "PISO_RESERVED_SPACE"
	SettingMemoryCapacity   = "PISO_MEMORY_CAPACITY"
	SettingDisplayWidth     = "PISO_DISPLAY_WIDTH"
	SettingDisplayHeight    = "PISO_DISPLAY_HEIGHT"
)

var (
	// ErrInvalidSetting is an error that occurs when a configured value
	// cannot be parsed or is out of range.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrMissingSetting is an error that occurs when a setting required by
	// the selected backend is not configured.
	ErrMissingSetting = errors.New("missing setting")
)

// AppConfiguration is the principal structure holding the application
// configuration.
type AppConfiguration struct {
	Backend          string
	PoolPath         string
	VolumeGroup      string
	ThinPool         string
	DefaultDriveSize uint64
	ReservedSpace    uint64
	MemoryCapacity   uint64
	DisplayWidth     int
	DisplayHeight    int
}

// NewAppConfiguration returns a pointer to a new [AppConfiguration] holding
// the defaults.
func NewAppConfiguration() *AppConfiguration {
	return &AppConfiguration{
		Backend:          volume.BackendFile,
		PoolPath:         DefaultPoolPath,
		ThinPool:         volume.DefaultThinPool,
		DefaultDriveSize: DefaultDriveSize,
		MemoryCapacity:   DefaultMemoryCapacity,
		DisplayWidth:     DefaultDisplayWidth,
		DisplayHeight:    DefaultDisplayHeight,
	}
}

// LoadAppConfiguration reads the configuration file over the defaults. A
// missing file is not an error; the defaults are used as they are.
func (c *Handler) LoadAppConfiguration(filename string) (*AppConfiguration, error) {
	config := NewAppConfiguration()

	envMap, err := c.ReadGeneric(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("(config-load) failed to read: %w", err)
		}
		slog.Info("No configuration file found, using defaults.",
			"path", filename,
		)

		return config, config.validate()
	}

	if v := c.MapKeyToString(envMap, SettingBackend); v != "" {
		config.Backend = v
	}
	if v := c.MapKeyToString(envMap, SettingPoolPath); v != "" {
		config.PoolPath = v
	}
	if v := c.MapKeyToString(envMap, SettingVolumeGroup); v != "" {
		config.VolumeGroup = v
	}
	if v := c.MapKeyToString(envMap, SettingThinPool); v != "" {
		config.ThinPool = v
	}

	for key, target := range map[string]*uint64{
		SettingDefaultDriveSize: &config.DefaultDriveSize,
		SettingReservedSpace:    &config.ReservedSpace,
		SettingMemoryCapacity:   &config.MemoryCapacity,
	} {
		if c.MapKeyToString(envMap, key) == "" {
			continue
		}
		size, ok := c.MapKeyToBytes(envMap, key)
		if !ok {
			return nil, fmt.Errorf("(config-load) %w: %s=%q", ErrInvalidSetting, key, envMap[key])
		}
		*target = size
	}

	for key, target := range map[string]*int{
		SettingDisplayWidth:  &config.DisplayWidth,
		SettingDisplayHeight: &config.DisplayHeight,
	} {
		if c.MapKeyToString(envMap, key) == "" {
			continue
		}
		value := c.MapKeyToInt(envMap, key)
		if value <= 0 {
			return nil, fmt.Errorf("(config-load) %w: %s=%q", ErrInvalidSetting, key, envMap[key])
		}
		*target = value
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (a *AppConfiguration) validate() error {
	switch a.Backend {
	case volume.BackendFile:
		if a.PoolPath == "" {
			return fmt.Errorf("(config-validate) %w: %s", ErrMissingSetting, SettingPoolPath)
		}
	case volume.BackendLVM:
		if a.VolumeGroup == "" {
			return fmt.Errorf("(config-validate) %w: %s", ErrMissingSetting, SettingVolumeGroup)
		}
	case volume.BackendMemory:
	default:
		return fmt.Errorf("(config-validate) %w: %s=%q", volume.ErrUnknownBackend, SettingBackend, a.Backend)
	}

	if a.DefaultDriveSize == 0 {
		return fmt.Errorf("(config-validate) %w: %s must be greater than zero", ErrInvalidSetting, SettingDefaultDriveSize)
	}

	if a.DisplayHeight < MinDisplayHeight {
		return fmt.Errorf("(config-validate) %w: %s must be at least %d", ErrInvalidSetting, SettingDisplayHeight, MinDisplayHeight)
	}

	return nil
}
