// Package sim drives the admission engine with seeded random traffic:
// account churn, deposits, withdrawals, and loan requests, one commit
// cycle per epoch. Runs are deterministic for a fixed seed, which the
// tests rely on.
package sim
