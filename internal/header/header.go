package header

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/updateos/binmgr/internal/shared/types"
)

// Magic identifies a binary file header ("BMGR" little-endian).
const Magic uint32 = 0x52474D42

// Size is the fixed length of the header prefix in bytes.
const Size = 4 + 2 + 4 + nameFieldLen

const nameFieldLen = types.MaxBinaryNameLen + 1

var (
	// ErrTruncated is returned when a file is shorter than the header.
	ErrTruncated = errors.New("header: file truncated")
	// ErrBadMagic is returned when the magic bytes do not match.
	ErrBadMagic = errors.New("header: bad magic")
	// ErrBadName is returned when the name field is empty or unterminated.
	ErrBadName = errors.New("header: bad name")
)

// Info is the parsed metadata prefix of a binary file.
type Info struct {
	Name    string
	Version int
}

// Read parses the header prefix of the file at path.
func Read(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("header: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a header from r.
func Decode(r io.Reader) (Info, error) {
	buf := make([]byte, Size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Info{}, ErrTruncated
	}

	if binary.LittleEndian.Uint32(buf[0:4]) != Magic {
		return Info{}, ErrBadMagic
	}
	if int(binary.LittleEndian.Uint16(buf[4:6])) != Size {
		return Info{}, ErrTruncated
	}

	version := binary.LittleEndian.Uint32(buf[6:10])

	nameField := buf[10 : 10+nameFieldLen]
	end := bytes.IndexByte(nameField, 0)
	if end <= 0 {
		// Empty name or no terminator inside the field.
		return Info{}, ErrBadName
	}

	return Info{
		Name:    string(nameField[:end]),
		Version: int(version),
	}, nil
}

// Encode writes a header for info to w. Used by staging tooling and tests.
func Encode(w io.Writer, info Info) error {
	if len(info.Name) == 0 || len(info.Name) > types.MaxBinaryNameLen {
		return ErrBadName
	}
	if info.Version < 0 {
		return fmt.Errorf("header: negative version %d", info.Version)
	}

	buf := make([]byte, Size)
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(Size))
	binary.LittleEndian.PutUint32(buf[6:10], uint32(info.Version))
	copy(buf[10:], info.Name)

	_, err := w.Write(buf)
	return err
}
