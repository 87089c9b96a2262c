// Package server manages the process lifecycle: it runs the HTTP surface
// and the background workers, and shuts both down gracefully on SIGTERM,
// SIGINT or SIGQUIT.
package server
