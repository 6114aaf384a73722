// Package container provides the two structures the admission engine
// is built on: an insertion-ordered doubly linked list and a
// fixed-bucket chained hash map keyed by uint32.
//
// Both structures are single-writer and perform no locking. The map
// keeps an auxiliary ordered list of live keys so iteration order is
// insertion order, independent of bucket layout.
package container
