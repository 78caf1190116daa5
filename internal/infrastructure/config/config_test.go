package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8600", cfg.Server.Port)
	assert.Equal(t, "/storage/binaries", cfg.Storage.Dir)
	assert.Equal(t, "/dev/mtdblock%d", cfg.Kernel.DevnameFmt)
	assert.Equal(t, 16, cfg.Queue.Capacity)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BINMGR_STORAGE_DIR", "/tmp/bins")
	t.Setenv("BINMGR_KERNEL_PARTS", "4,5")
	t.Setenv("BINMGR_KERNEL_INUSE", "1")
	t.Setenv("BINMGR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/bins", cfg.Storage.Dir)
	assert.Equal(t, "4,5", cfg.Kernel.Partitions)
	assert.Equal(t, 1, cfg.Kernel.InUse)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestKernelInfo(t *testing.T) {
	info, err := KernelConfig{Partitions: "4, 5", InUse: 0}.Info()
	require.NoError(t, err)
	require.Len(t, info.Partitions, 2)
	assert.Equal(t, 4, info.Partitions[0].Num)
	assert.Equal(t, 5, info.Partitions[1].Num)

	target, ok := info.UpdateTarget()
	assert.True(t, ok)
	assert.Equal(t, 5, target.Num)
}

func TestKernelInfoSinglePartitionHasNoTarget(t *testing.T) {
	info, err := KernelConfig{Partitions: "4"}.Info()
	require.NoError(t, err)

	_, ok := info.UpdateTarget()
	assert.False(t, ok)
}

func TestKernelInfoEmpty(t *testing.T) {
	info, err := KernelConfig{}.Info()
	require.NoError(t, err)
	assert.Empty(t, info.Partitions)
}

func TestKernelInfoErrors(t *testing.T) {
	_, err := KernelConfig{Partitions: "4,x"}.Info()
	assert.Error(t, err)

	_, err = KernelConfig{Partitions: "4,5", InUse: 2}.Info()
	assert.Error(t, err)

	// Dual-bank model: a third partition cannot be addressed.
	_, err = KernelConfig{Partitions: "1,2,3", InUse: 2}.Info()
	assert.Error(t, err)
}
