// Package paths centralizes the naming conventions of the binary manager.
//
// Every name that appears both on disk and in code is formatted (and parsed)
// here, in exactly one place:
//   - binary files: <name>_<version> inside the flat storage directory
//   - response channels: binmgr_r<requester-id>
//   - kernel partition device nodes
//
// Keeping producers and matchers on one formatter eliminates drift between
// the code that writes a name and the code that later recognizes it.
package paths
