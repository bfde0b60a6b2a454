// Package application provides client initialization and dependency wiring.
// It encapsulates the creation of the pack service client, the fetch
// orchestrator, metrics and the optional metrics HTTP server, making the main
// package cleaner and more focused on CLI parsing and orchestration.
package application
