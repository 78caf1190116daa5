// Command binmgrd runs the binary manager daemon: it scans the binary
// storage directory at boot and serves update requests over HTTP.
package main
