// Package client talks to the vendorrisk review service.
//
// GRPCClient dials the server, calls the review RPCs with the JSON content
// subtype and maps gRPC status codes back to the sentinel errors in
// internal/common, plus ErrUnavailable for transport failures. It satisfies
// the dashboard data source, the intake submitter and the document linker
// used by the CLI.
package client
