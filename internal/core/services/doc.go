// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search session types in this package are owned by a single
// event loop. Only QueryChannel.Resolve may run on another goroutine.
package services
