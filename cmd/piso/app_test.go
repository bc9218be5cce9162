package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertwitch/piso/internal/configuration"
	"github.com/desertwitch/piso/internal/controller"
	"github.com/desertwitch/piso/internal/schema"
	"github.com/desertwitch/piso/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *volume.MemoryStore) {
	t.Helper()

	store := volume.NewMemoryStore(10 << 30)
	ctrl := controller.New(store, controller.Options{DefaultDriveSize: 4 << 30})
	require.NoError(t, ctrl.RebuildFromVolumes())

	return NewApp(ctrl), store
}

// TestRunHeadless_Script creates two drives, removes the first through its
// detail screen and quits.
func TestRunHeadless_Script(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)

	script := strings.Join([]string{
		"select", // create drive1
		"next",
		"select", // create drive2
		"prev",
		"select", // open drive1
		"next",
		"select", // remove drive1
		"quit",
		"select", // never reached
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, app.RunHeadless(t.Context(), strings.NewReader(script), &out))

	drives, err := store.ListVolumes()
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, "drive2", drives[0].Name)

	frames := strings.Count(out.String(), "+----------------------+")
	assert.Equal(t, 2*8, frames, "one framed display per processed command plus the initial one")
	assert.Contains(t, out.String(), "|> drive2 4.0 GiB")
}

// TestRunHeadless_EndOfInput verifies the loop ends with the input.
func TestRunHeadless_EndOfInput(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)

	var out bytes.Buffer
	require.NoError(t, app.RunHeadless(t.Context(), strings.NewReader("\nbogus\nrescan\nback\n"), &out))

	drives, err := store.ListVolumes()
	require.NoError(t, err)
	assert.Len(t, drives, 1, "an empty line should select the new drive entry")
}

func TestList(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	_, err := app.controller.AddDrive(1 << 30)
	require.NoError(t, err)

	var out bytes.Buffer
	app.List(&out)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "drive1"))
	assert.Contains(t, lines[0], "1.0 GiB")
	assert.Contains(t, lines[0], app.controller.Drives()[0].Serial())
	assert.Equal(t, "1 drives, 10.0% of the pool committed, 9.0 GiB free", lines[1])
}

func TestNewStore_Table(t *testing.T) {
	t.Parallel()

	pool := t.TempDir()

	testCases := []struct {
		name     string
		config   *configuration.AppConfiguration
		expected any
		err      error
	}{
		{"Success_File", &configuration.AppConfiguration{Backend: volume.BackendFile, PoolPath: pool}, &volume.FileStore{}, nil},
		{"Success_LVM", &configuration.AppConfiguration{Backend: volume.BackendLVM, VolumeGroup: "vg0"}, &volume.LVMStore{}, nil},
		{"Success_Memory", &configuration.AppConfiguration{Backend: volume.BackendMemory, MemoryCapacity: 1}, &volume.MemoryStore{}, nil},
		{"Fail_Unknown", &configuration.AppConfiguration{Backend: "zfs"}, nil, volume.ErrUnknownBackend},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store, err := newStore(tc.config, &schema.OS{}, &schema.Unix{}, &schema.Exec{})
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.Nil(t, store)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, tc.expected, store)
		})
	}
}

func TestNewStore_Fail_MissingPool(t *testing.T) {
	t.Parallel()

	config := &configuration.AppConfiguration{
		Backend:  volume.BackendFile,
		PoolPath: filepath.Join(t.TempDir(), "missing"),
	}

	store, err := newStore(config, &schema.OS{}, &schema.Unix{}, &schema.Exec{})
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "is not accessible")
}
