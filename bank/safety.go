package bank

// safeLoans runs the banker's-algorithm admission check for the loan
// queue on a scratch budget; engine state is never touched. Grants
// happen in rounds: every ungranted loan whose amount fits the working
// budget is granted, and each grant grows the budget by the bank's
// interest cut only, since the principal leaves the bank. A round that
// grants nothing while loans remain waiting proves the batch unsafe.
//
// Worst case O(n^2) over the queue, which is fine for per-epoch batch
// sizes. A budget-sorted single pass would be faster but is only
// admissible with an equivalence proof.
func (e *Engine) safeLoans() bool {
	n := e.pendingLoans.Len()
	granted := make([]bool, n)
	budget := e.treasury
	remaining := n

	for remaining > 0 {
		progress := false
		i := 0
		e.pendingLoans.ForEach(func(l PendingLoan) bool {
			if !granted[i] && l.Amount <= budget {
				budget += mulFloor(l.Amount, e.loanRate)
				granted[i] = true
				remaining--
				progress = true
			}
			i++
			return true
		})
		if !progress {
			return false
		}
	}
	return true
}

// safeOperations checks the withdraw/close batch in aggregate: the
// summed amounts must fit in the treasury.
func (e *Engine) safeOperations() bool {
	var need uint64
	e.pendingOps.ForEach(func(op PendingOperation) bool {
		need += op.Amount
		return true
	})
	return need <= e.treasury
}
