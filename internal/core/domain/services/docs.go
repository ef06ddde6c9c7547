// Package services provides domain services of the buffet order core that do
// not belong to a single aggregate.
//
// The package includes:
//   - ReceiptComposer: renders the localized confirmation and ready emails of
//     an order (itemized lines, computed total, pickup time and the pickup
//     code warning)
//
// Services here are pure: they take domain objects and return values. Sending
// the result is the job of the notification dispatcher.
package services
