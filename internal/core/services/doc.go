// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services perform no I/O of their own; storage and network access go
// through the driven ports they are constructed with.
package services
