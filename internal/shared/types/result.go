package types

import "fmt"

// Result classifies the outcome of a binary manager operation.
type Result int

const (
	// ResultOK indicates the request succeeded.
	ResultOK Result = iota
	// ResultInvalidParam indicates a caller contract violation; no side effects occurred.
	ResultInvalidParam
	// ResultNotFound indicates a valid request with no applicable target,
	// e.g. the kernel has no inactive bank to stage an update into.
	ResultNotFound
	// ResultAlreadyUpdated indicates the requested version is already the
	// slot's active version; not an error for the requester.
	ResultAlreadyUpdated
	// ResultOperationFail covers I/O, registry, and directory-creation failures.
	ResultOperationFail
)

var resultNames = map[Result]string{
	ResultOK:             "OK",
	ResultInvalidParam:   "INVALID_PARAM",
	ResultNotFound:       "NOT_FOUND",
	ResultAlreadyUpdated: "ALREADY_UPDATED",
	ResultOperationFail:  "OPERATION_FAIL",
}

// String returns the canonical name of the result code.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(r))
}

// OK reports whether the result is a success for the requester.
// ALREADY_UPDATED counts as success: the requested state already holds.
func (r Result) OK() bool {
	return r == ResultOK || r == ResultAlreadyUpdated
}

// MarshalJSON encodes the result as its canonical name.
func (r Result) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON decodes a result from its canonical name.
func (r *Result) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid result encoding: %s", s)
	}
	s = s[1 : len(s)-1]
	for code, name := range resultNames {
		if name == s {
			*r = code
			return nil
		}
	}
	return fmt.Errorf("unknown result: %s", s)
}
