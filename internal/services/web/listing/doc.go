// Package listing owns the state of one mounted project listing: the
// records on display, the count that was on display before the latest
// append, and whether a load-more fetch is pending. It hands only the
// newly appended cards to the animator.
package listing
