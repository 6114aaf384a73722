package bank

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"bankd/container"
)

// ErrNegativeRate is the only fatal configuration failure: interest
// rates must be >= 0 and are validated once at construction.
var ErrNegativeRate = errors.New("bank: interest rate must be >= 0")

// ErrKeyNotFound reports an operation against an absent account.
var ErrKeyNotFound = container.ErrKeyNotFound

// Engine owns the treasury, the account map, and the two pending
// queues. It is not safe for concurrent use; see the package comment
// for the epoch contract.
type Engine struct {
	treasury    uint64
	loanRate    decimal.Decimal
	depositRate decimal.Decimal

	accounts     *container.Map[uint64]
	pendingLoans *container.OrderedList[PendingLoan]
	pendingOps   *container.OrderedList[PendingOperation]
}

// New builds an engine with the given starting treasury and interest
// rates. A negative rate fails with ErrNegativeRate and the engine is
// never created.
func New(initialTreasury uint64, loanRate, depositRate decimal.Decimal) (*Engine, error) {
	if loanRate.IsNegative() {
		return nil, fmt.Errorf("loan rate %s: %w", loanRate, ErrNegativeRate)
	}
	if depositRate.IsNegative() {
		return nil, fmt.Errorf("deposit rate %s: %w", depositRate, ErrNegativeRate)
	}
	return &Engine{
		treasury:     initialTreasury,
		loanRate:     loanRate,
		depositRate:  depositRate,
		accounts:     container.NewMap[uint64](container.DefaultBucketCapacity),
		pendingLoans: container.NewOrderedList[PendingLoan](),
		pendingOps:   container.NewOrderedList[PendingOperation](),
	}, nil
}

// Request submits one customer request. Open and deposit mutate state
// synchronously; withdraw, close, and loan are queued for the epoch's
// commit and are not validated at submission time. Submitting more
// than one deferred request per key per epoch is a contract violation
// the caller can avoid via PendingRequest; the engine does not enforce
// it here.
func (e *Engine) Request(key uint32, kind RequestKind, amount uint64) error {
	switch kind {
	case OpenAccount:
		e.treasury += amount
		e.accounts.Insert(key, amount)
	case Deposit:
		ref, err := e.accounts.Ref(key)
		if err != nil {
			return fmt.Errorf("deposit to account %d: %w", key, err)
		}
		e.treasury += amount
		*ref += amount
	case Withdraw, CloseAccount:
		e.pendingOps.Append(PendingOperation{Key: key, Kind: kind, Amount: amount})
	case Loan:
		e.pendingLoans.Append(PendingLoan{Key: key, Amount: amount})
	}
	return nil
}

// PendingRequest reports whether key has a request in either queue.
func (e *Engine) PendingRequest(key uint32) bool {
	return e.pendingLoans.ContainsFunc(func(l PendingLoan) bool { return l.Key == key }) ||
		e.pendingOps.ContainsFunc(func(op PendingOperation) bool { return op.Key == key })
}

// PendingLoans reports whether any loan is queued.
func (e *Engine) PendingLoans() bool { return e.pendingLoans.Len() > 0 }

// PendingOperations reports whether any withdraw/close is queued.
func (e *Engine) PendingOperations() bool { return e.pendingOps.Len() > 0 }

// PendingLoanCount returns the current loan queue length.
func (e *Engine) PendingLoanCount() int { return e.pendingLoans.Len() }

// PendingOperationCount returns the current operation queue length.
func (e *Engine) PendingOperationCount() int { return e.pendingOps.Len() }

// CommitLoans admits or rejects the queued loan batch as a whole. On
// an empty queue it returns true with no effect. When the batch is
// safe the treasury collects the interest cut of every loan; the
// principal is paid out externally and is never credited to a tracked
// balance. The queue is cleared unconditionally, win or lose.
func (e *Engine) CommitLoans() bool {
	if e.pendingLoans.Len() == 0 {
		return true
	}
	safe := e.safeLoans()
	if safe {
		e.pendingLoans.ForEach(func(l PendingLoan) bool {
			e.treasury += mulFloor(l.Amount, e.loanRate)
			return true
		})
	}
	e.pendingLoans.Clear()
	return safe
}

// CommitOperations admits or rejects the queued withdraw/close batch.
// The batch is safe iff the summed amounts fit in the treasury. A
// committed close removes the account and forfeits any residual
// balance; a committed withdraw deducts from the balance. The queue is
// cleared unconditionally.
func (e *Engine) CommitOperations() bool {
	if e.pendingOps.Len() == 0 {
		return true
	}
	safe := e.safeOperations()
	if safe {
		e.pendingOps.ForEach(func(op PendingOperation) bool {
			e.treasury -= op.Amount
			switch op.Kind {
			case CloseAccount:
				_ = e.accounts.Remove(op.Key)
			case Withdraw:
				// Deferred requests are unvalidated at submit; a key
				// that vanished since is the driver's contract breach
				// and the deduction is skipped.
				if ref, err := e.accounts.Ref(op.Key); err == nil {
					*ref -= op.Amount
				}
			}
			return true
		})
	}
	e.pendingOps.Clear()
	return safe
}

// AccrueInterest applies the deposit rate to every balance, once per
// epoch, independent of the commit outcomes.
func (e *Engine) AccrueInterest() {
	growth := decimal.New(1, 0).Add(e.depositRate)
	e.accounts.Keys().ForEach(func(key uint32) bool {
		if ref, err := e.accounts.Ref(key); err == nil {
			*ref = mulFloor(*ref, growth)
		}
		return true
	})
}

// Treasury returns the engine-wide budget.
func (e *Engine) Treasury() uint64 { return e.treasury }

// AccountBalance returns the balance for key.
func (e *Engine) AccountBalance(key uint32) (uint64, error) {
	return e.accounts.Get(key)
}

// AccountKeys returns the live account keys in insertion order. The
// list is a read-only view owned by the engine.
func (e *Engine) AccountKeys() *container.OrderedList[uint32] {
	return e.accounts.Keys()
}

// AccountExists reports whether key has a live account.
func (e *Engine) AccountExists(key uint32) bool {
	return e.accounts.Contains(key)
}

// AccountCount returns the number of live accounts.
func (e *Engine) AccountCount() int { return e.accounts.Len() }

// mulFloor multiplies a uint64 amount by an exact decimal factor and
// floors the product back onto uint64, the truncation the treasury
// arithmetic is defined in.
func mulFloor(amount uint64, factor decimal.Decimal) uint64 {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	return d.Mul(factor).Floor().BigInt().Uint64()
}
