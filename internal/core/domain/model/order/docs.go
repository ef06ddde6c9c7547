// Package order provides the Order aggregate of the buffet order core and its
// status state machine.
//
// The package includes:
//   - Order: The aggregate root holding items, pickup data, owning buffet and the
//     encrypted contact envelope
//   - Status: A forward-only state machine pending -> preparing -> ready -> completed
//   - Effect / Transition: side effects requested by state changes, performed
//     by the application layer after persistence
//   - LinePrice / Total: the "(<n> Ft)" price annotation convention of item lines
//
// Key business rules:
//   - Every order belongs to exactly one buffet
//   - Status never moves backward; forward jumps are allowed
//   - The "ready" notification is edge-triggered: it is requested only when
//     entering Ready, never on a repeated write of Ready
//   - Plaintext contact addresses never reach the aggregate
package order
