// Package contract resolves which PPA contract governs a metering point and
// how long the point has been covered without a gap.
//
// Everything here is pure and works on data the registry client has already
// fetched: build the quote filters, turn records into a Set, pick the live
// contract, then compute its continuity window or clamp contracts to a
// reporting period.
package contract
