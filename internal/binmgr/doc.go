// Package binmgr implements the binary slot and version lifecycle manager.
//
// It owns the on-storage representation of versioned binaries and
// arbitrates update requests so at most one file per logical slot is ever
// staged for activation at a time.
//
// Components:
//   - Scanner (ScanAll): boot-time walk of the storage directory that
//     registers every discovered binary name
//   - Garbage collector (ClearStaleVersions): removes every on-disk
//     version of a slot except the one the registry considers active
//   - Entry allocator (CreateEntry): stages a new version; kernel
//     requests are answered from the partition table, user binaries get a
//     fresh empty file after the old versions are reclaimed
//
// Staging and activation are separate phases. CreateEntry garbage-collects
// at the OLD active version and creates the file for the NEW one; the
// registry's active version only changes when the activation subsystem
// calls Registry.Activate. Running GC again after activation removes the
// superseded file.
//
// The manager serializes CreateEntry per binary name with a keyed mutex;
// concurrent requests for different binaries proceed independently.
package binmgr
