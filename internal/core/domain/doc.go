// Package domain defines the core business entities for teabag-snap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AuthData: The single persisted credential of the connected account
//   - Operation, Envelope, Outcome: GraphQL request and response shapes
//   - RequestError: Classified failure of a GraphQL round trip
//   - Transaction, TxLabels: The pending transaction and its labelled parties
//   - Component: The content tree shown in the transaction-insight panel
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
