// Package heap gives dynamically allocated records a single owner.
//
// A Box or Array is released exactly once: a second Release reports
// ErrDoubleRelease and any access after release reports ErrReleased. WithBox and
// WithArray tie the release to the end of a callback so callers never pair
// allocation and release by hand. Every allocation is recorded in a ledger that
// Stats reads back.
package heap
