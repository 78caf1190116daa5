package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryFileString(t *testing.T) {
	f := BinaryFile{Name: "app", Version: 3}
	assert.Equal(t, "app_3", f.String())
	assert.Equal(t, "/storage/binaries/app_3", f.In("/storage/binaries"))
}

func TestParseBinaryFile(t *testing.T) {
	tests := []struct {
		in   string
		want BinaryFile
		ok   bool
	}{
		{"app_3", BinaryFile{Name: "app", Version: 3}, true},
		{"net_utils_12", BinaryFile{Name: "net_utils", Version: 12}, true},
		{"app_", BinaryFile{}, false},
		{"_3", BinaryFile{}, false},
		{"app", BinaryFile{}, false},
		{"app_-1", BinaryFile{}, false},
		{"app_v3", BinaryFile{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseBinaryFile(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestBelongsToRequiresSeparatorBoundary(t *testing.T) {
	assert.True(t, BelongsTo("foo_1", "foo"))
	assert.True(t, BelongsTo("foo_99", "foo"))
	assert.False(t, BelongsTo("foobar_1", "foo"))
	assert.False(t, BelongsTo("foo", "foo"))
	assert.False(t, BelongsTo("fo_1", "foo"))
}

func TestResponseChannel(t *testing.T) {
	assert.Equal(t, "binmgr_r42", ResponseChannel(42))
	assert.Equal(t, "binmgr_r0", ResponseChannel(0))
}

func TestKernelDevice(t *testing.T) {
	assert.Equal(t, "/dev/mtdblock5", KernelDevice("/dev/mtdblock%d", 5))
}
