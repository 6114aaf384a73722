// Package bank implements the batch admission-control engine. Open
// and deposit requests take effect immediately; withdrawals, account
// closures, and loans queue up during an epoch and are admitted or
// rejected as a whole by a banker's-algorithm safety check, so the
// treasury can never be driven negative by a committed batch.
//
// The engine is a single-writer system: one caller submits requests,
// then runs CommitLoans, CommitOperations, and AccrueInterest once per
// epoch. It performs no locking and no I/O.
package bank
