package binmgr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAllRegistersDiscoveredBinaries(t *testing.T) {
	m, reg, _ := newTestManager(t, nil)

	writeBinary(t, m.StorageDir(), "app", 1)
	writeBinary(t, m.StorageDir(), "net_utils", 3)

	m.ScanAll()

	_, found := reg.FindSlot("app")
	assert.True(t, found)
	_, found = reg.FindSlot("net_utils")
	assert.True(t, found)
	assert.Equal(t, 2, reg.Count())
}

func TestScanAllIsIdempotent(t *testing.T) {
	m, reg, _ := newTestManager(t, nil)

	writeBinary(t, m.StorageDir(), "app", 1)
	writeBinary(t, m.StorageDir(), "app", 2)

	m.ScanAll()
	first := reg.Count()

	m.ScanAll()
	assert.Equal(t, first, reg.Count())
	assert.Equal(t, 1, first, "two versions of one binary share a slot")
}

func TestScanAllSkipsUnreadableHeaders(t *testing.T) {
	m, reg, _ := newTestManager(t, nil)

	writeBinary(t, m.StorageDir(), "good", 1)
	// Garbage file: no header at all.
	require.NoError(t, os.WriteFile(filepath.Join(m.StorageDir(), "junk_1"), []byte("not a binary"), 0o666))

	m.ScanAll()

	assert.Equal(t, 1, reg.Count())
	_, found := reg.FindSlot("good")
	assert.True(t, found)
}

func TestScanAllMissingDirectoryIsNotAnError(t *testing.T) {
	m, reg, _ := newTestManager(t, nil)

	// Storage directory never created.
	m.ScanAll()
	assert.Equal(t, 0, reg.Count())
}

func TestScanAllIgnoresNonRegularEntries(t *testing.T) {
	m, reg, _ := newTestManager(t, nil)

	writeBinary(t, m.StorageDir(), "app", 1)
	require.NoError(t, os.Mkdir(filepath.Join(m.StorageDir(), "subdir"), 0o777))

	m.ScanAll()
	assert.Equal(t, 1, reg.Count())
}
