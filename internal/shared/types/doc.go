// Package types defines shared types used across the binary manager.
//
// This package has no dependencies on other internal packages, allowing
// it to be imported by any layer without circular dependencies.
//
// Contents:
//   - Result: the result taxonomy for update requests
//   - CreateEntryRequest/Response: the update request/response message pair
//   - KernelInfo/Partition: the kernel slot's dual-bank partition set
package types
