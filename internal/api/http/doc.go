// Package http exposes the binary manager operations over HTTP.
//
// Routes:
//   - POST /v1/scan: run the boot-time directory scan
//   - POST /v1/binaries: create a binary entry (update request)
//   - POST /v1/binaries/:name/activate: flip a slot's active version
//   - GET /v1/responses/:requester_id: drain one response message
//   - GET /v1/slots: list registered slots
//   - GET /health: liveness probe
//
// The synchronous body of a create-entry call carries only the result
// code; the authoritative {result, path} response is delivered on the
// requester's private channel and drained via /v1/responses.
package http
