// Package registry tracks binary slots and their active versions.
//
// A slot is the logical identity of one binary: a stable small index, a
// unique bounded name, and the version the system currently considers
// loaded. The registry is the single source of truth for "what version is
// active" (distinct from "most recently written"), and both the scanner
// and the garbage collector consult it.
//
// The distinguished kernel slot carries a partition descriptor set instead
// of versioned files; it is seeded once at construction.
//
// The registry is constructed once at startup and handed to consumers by
// reference. There are no package-level instances.
package registry
