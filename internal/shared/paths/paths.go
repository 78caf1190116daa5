package paths

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultStorageDir is the flat directory holding versioned user binaries.
const DefaultStorageDir = "/storage/binaries"

// Separator joins a binary name and its version in a file name.
const Separator = "_"

// responseChannelPrefix prefixes per-requester response channel names.
const responseChannelPrefix = "binmgr_r"

// BinaryFile is the structured key for one versioned binary file.
type BinaryFile struct {
	Name    string
	Version int
}

// String formats the on-disk file name, <name>_<version>.
func (b BinaryFile) String() string {
	return b.Name + Separator + strconv.Itoa(b.Version)
}

// In returns the full path of the file inside dir.
func (b BinaryFile) In(dir string) string {
	return filepath.Join(dir, b.String())
}

// ParseBinaryFile splits a file name back into its key. ok is false when
// the name does not follow the <name>_<version> convention.
func ParseBinaryFile(fileName string) (BinaryFile, bool) {
	i := strings.LastIndex(fileName, Separator)
	if i <= 0 || i == len(fileName)-1 {
		return BinaryFile{}, false
	}
	version, err := strconv.Atoi(fileName[i+1:])
	if err != nil || version < 0 {
		return BinaryFile{}, false
	}
	return BinaryFile{Name: fileName[:i], Version: version}, true
}

// BelongsTo reports whether fileName is a versioned file of the named
// binary. The match requires the separator immediately after the name, so
// clearing "foo" never touches "foobar_1".
func BelongsTo(fileName, binaryName string) bool {
	return strings.HasPrefix(fileName, binaryName+Separator)
}

// ResponseChannel derives the response channel name for a requester.
func ResponseChannel(requesterID int) string {
	return responseChannelPrefix + strconv.Itoa(requesterID)
}

// KernelDevice formats a partition device path using devFmt, which must
// contain a single %d verb for the partition number.
func KernelDevice(devFmt string, partNum int) string {
	return fmt.Sprintf(devFmt, partNum)
}
