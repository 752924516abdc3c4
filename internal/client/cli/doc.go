// Package cli is the interactive vendorrisk terminal client.
//
// It wires configuration, the review backend (gRPC or the built-in sample
// data), the admin dashboard and the intake form into a REPL. A background
// watcher pings the server and flips the prompt between online and offline.
//
// Commands:
//   - list, refresh, search, filter, sort: the assessments table
//   - open, notes, info, reject, approve, close, download: one assessment
//   - submit: fill in and send a new vendor assessment
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
