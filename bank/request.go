package bank

// RequestKind enumerates what a customer can ask of the bank.
type RequestKind int

const (
	OpenAccount RequestKind = iota
	CloseAccount
	Deposit
	Withdraw
	Loan
)

func (k RequestKind) String() string {
	switch k {
	case OpenAccount:
		return "open"
	case CloseAccount:
		return "close"
	case Deposit:
		return "deposit"
	case Withdraw:
		return "withdraw"
	case Loan:
		return "loan"
	default:
		return "unknown"
	}
}

// PendingLoan is a queued loan request. It lives only inside the
// current epoch's queue and is destroyed by the next CommitLoans,
// whether or not the batch is admitted.
type PendingLoan struct {
	Key    uint32
	Amount uint64
}

// PendingOperation is a queued withdraw or close request, with the
// same one-epoch lifetime as PendingLoan.
type PendingOperation struct {
	Key    uint32
	Kind   RequestKind
	Amount uint64
}
