// Package server assembles the binary manager daemon: registry, response
// broker, lifecycle manager, and the HTTP API that fronts them.
package server
