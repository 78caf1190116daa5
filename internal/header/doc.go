// Package header reads the metadata prefix embedded in binary files.
//
// A binary file is an opaque byte blob carrying a fixed little-endian
// prefix: magic, header size, version, and a NUL-padded name. The reader
// only parses the prefix; it never verifies the body; integrity checking
// belongs to the loader, not the storage bookkeeping.
package header
