// Package kernel holds the small value objects shared by the order domain:
// UUID identifiers, contact Email addresses and customer PickupCodes.
//
// All of them are immutable, validated on construction, and invalid as zero
// values.
package kernel
