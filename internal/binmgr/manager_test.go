package binmgr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/updateos/binmgr/internal/header"
	"github.com/updateos/binmgr/internal/mq"
	"github.com/updateos/binmgr/internal/registry"
	"github.com/updateos/binmgr/internal/shared/paths"
	"github.com/updateos/binmgr/internal/shared/types"
)

// newTestManager wires a manager over a temp storage directory, an
// in-memory registry, and an in-process broker.
func newTestManager(t *testing.T, kernel *types.KernelInfo) (*Manager, *registry.InMemory, *mq.Broker) {
	t.Helper()

	reg := registry.NewInMemory(kernel)
	broker := mq.NewBroker(0, nil)
	m := New(Config{
		StorageDir: filepath.Join(t.TempDir(), "binaries"),
		DevnameFmt: "/dev/mtdblock%d",
	}, reg, broker)

	return m, reg, broker
}

// writeBinary creates <dir>/<name>_<version> with a valid header prefix.
func writeBinary(t *testing.T, dir, name string, version int) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o777))
	path := paths.BinaryFile{Name: name, Version: version}.In(dir)

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, header.Encode(f, header.Info{Name: name, Version: version}))
	require.NoError(t, f.Close())
	return path
}

// recvResponse drains the requester's channel and decodes the message.
func recvResponse(t *testing.T, broker *mq.Broker, requesterID int) types.CreateEntryResponse {
	t.Helper()

	payload, ok := broker.Receive(paths.ResponseChannel(requesterID))
	require.True(t, ok, "expected a response for requester %d", requesterID)

	var resp types.CreateEntryResponse
	require.NoError(t, sonic.Unmarshal(payload, &resp))
	return resp
}

// listFiles returns the names of regular files in dir, empty when the
// directory does not exist.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names
}
