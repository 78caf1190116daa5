package types

// KernelName is the reserved binary name for the kernel slot. Requests for
// this name are answered from the partition table and never touch the
// binary storage directory.
const KernelName = "kernel"

// MaxBinaryNameLen bounds binary names. Longer names are rejected at
// validation rather than truncated.
const MaxBinaryNameLen = 31

// Partition describes one physical bank holding a kernel image.
type Partition struct {
	// Num identifies the partition on the block device.
	Num int `json:"num"`
	// Size is the bank capacity in bytes, zero if unknown.
	Size int `json:"size,omitempty"`
}

// KernelInfo is the kernel slot's partition descriptor set.
// If more than one partition exists, exactly one is in use and the other
// is the update target; with a single partition there is no update target.
type KernelInfo struct {
	Partitions []Partition `json:"partitions"`
	// InUse indexes Partitions at the currently running bank.
	InUse int `json:"in_use"`
}

// UpdateTarget returns the partition that an update should be staged into:
// the bank not currently in use. ok is false when no such bank exists,
// including descriptor sets whose in-use index has no dual-bank partner.
func (k KernelInfo) UpdateTarget() (Partition, bool) {
	if len(k.Partitions) < 2 {
		return Partition{}, false
	}
	target := k.InUse ^ 1
	if target < 0 || target >= len(k.Partitions) {
		return Partition{}, false
	}
	return k.Partitions[target], true
}

// CreateEntryRequest asks the binary manager to stage a new version of a
// binary. The response is delivered on the requester's private channel.
type CreateEntryRequest struct {
	RequesterID int    `json:"requester_id"`
	Name        string `json:"name"`
	Version     int    `json:"version"`
}

// CreateEntryResponse is the terminal answer to a CreateEntryRequest.
// Path is a binary file path for user binaries, a partition device path
// for the kernel, and empty on non-OK results.
type CreateEntryResponse struct {
	Result Result `json:"result"`
	Path   string `json:"path,omitempty"`
}
