package sim

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"bankd/audit"
	"bankd/bank"
)

// Config controls one simulation run. Zero probability or mean fields
// fall back to the defaults below.
type Config struct {
	Epochs int
	Tick   time.Duration
	Seed   int64

	// Per-epoch probabilities.
	CloseProb    float64
	OpenProb     float64
	ActivityProb float64

	// Means of the exponential budget draws.
	OpenBudgetMean float64
	LoanBudgetMean float64
}

const (
	defaultCloseProb    = 0.05
	defaultOpenProb     = 0.15
	defaultActivityProb = 0.5

	defaultOpenBudgetMean = 10000
	defaultLoanBudgetMean = 25000
)

func (c Config) withDefaults() Config {
	if c.CloseProb <= 0 {
		c.CloseProb = defaultCloseProb
	}
	if c.OpenProb <= 0 {
		c.OpenProb = defaultOpenProb
	}
	if c.ActivityProb <= 0 {
		c.ActivityProb = defaultActivityProb
	}
	if c.OpenBudgetMean <= 0 {
		c.OpenBudgetMean = defaultOpenBudgetMean
	}
	if c.LoanBudgetMean <= 0 {
		c.LoanBudgetMean = defaultLoanBudgetMean
	}
	return c
}

// Tally counts accepted and rejected batches across a run.
type Tally struct {
	LoansAccepted int
	LoansRejected int
	OpsAccepted   int
	OpsRejected   int
}

// Driver submits random requests against one engine and commits once
// per epoch. Single-threaded, like the engine it drives.
type Driver struct {
	cfg    Config
	engine *bank.Engine
	rng    *rand.Rand
	sink   audit.Sink
	log    *zap.SugaredLogger

	epoch uint64
	tally Tally
}

// NewDriver wires a driver. A nil sink or logger falls back to no-op
// implementations.
func NewDriver(cfg Config, engine *bank.Engine, sink audit.Sink, log *zap.SugaredLogger) *Driver {
	if sink == nil {
		sink = audit.Nop{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Driver{
		cfg:    cfg.withDefaults(),
		engine: engine,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		sink:   sink,
		log:    log,
	}
}

// Tally returns the accepted/rejected counters so far.
func (d *Driver) Tally() Tally { return d.tally }

// Epoch returns the number of completed epochs.
func (d *Driver) Epoch() uint64 { return d.epoch }

// Run executes the configured number of epochs, sleeping Tick between
// them. Cancellation is honored at epoch boundaries; an epoch itself
// never suspends.
func (d *Driver) Run(ctx context.Context) error {
	for i := 0; i < d.cfg.Epochs; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.step(ctx)
		if d.cfg.Tick > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.cfg.Tick):
			}
		}
	}
	return nil
}

// step runs one epoch: random submissions, then the commit cycle.
func (d *Driver) step(ctx context.Context) {
	d.epoch++
	e := d.engine

	// Maybe close one existing account, asking for its full balance.
	if e.AccountCount() > 0 && d.rng.Float64() < d.cfg.CloseProb {
		idx := d.rng.Intn(e.AccountCount())
		if key, err := e.AccountKeys().At(idx); err == nil {
			balance, _ := e.AccountBalance(key)
			_ = e.Request(key, bank.CloseAccount, balance)
		}
	}

	// Maybe open a fresh account.
	if d.rng.Float64() < d.cfg.OpenProb {
		_ = e.Request(d.freshKey(), bank.OpenAccount, d.expDraw(d.cfg.OpenBudgetMean))
	}

	// Activity on live accounts that have no request in flight.
	keys := e.AccountKeys()
	for i := 0; i < keys.Len(); i++ {
		key, err := keys.At(i)
		if err != nil {
			break
		}
		if e.PendingRequest(key) || d.rng.Float64() >= d.cfg.ActivityProb {
			continue
		}
		switch d.rng.Intn(3) {
		case 0:
			_ = e.Request(key, bank.Deposit, d.expDraw(d.cfg.OpenBudgetMean))
		case 1:
			balance, _ := e.AccountBalance(key)
			_ = e.Request(key, bank.Withdraw, d.uniformDraw(balance))
		case 2:
			_ = e.Request(key, bank.Loan, d.expDraw(d.cfg.LoanBudgetMean))
		}
	}

	// Commit cycle: loans, then operations, then interest accrual.
	if e.PendingLoans() {
		n := e.PendingLoanCount()
		accepted := e.CommitLoans()
		if accepted {
			d.tally.LoansAccepted++
		} else {
			d.tally.LoansRejected++
		}
		d.publish(ctx, audit.KindLoans, accepted, n)
	}
	if e.PendingOperations() {
		n := e.PendingOperationCount()
		accepted := e.CommitOperations()
		if accepted {
			d.tally.OpsAccepted++
		} else {
			d.tally.OpsRejected++
		}
		d.publish(ctx, audit.KindOperations, accepted, n)
	}
	e.AccrueInterest()

	d.log.Debugw("epoch complete",
		"epoch", d.epoch,
		"treasury", e.Treasury(),
		"accounts", e.AccountCount(),
	)
}

func (d *Driver) publish(ctx context.Context, kind string, accepted bool, requests int) {
	ev := audit.Event{
		Epoch:    d.epoch,
		Kind:     kind,
		Accepted: accepted,
		Requests: requests,
		Treasury: d.engine.Treasury(),
		Time:     time.Now(),
	}
	if err := d.sink.Publish(ctx, ev); err != nil {
		d.log.Warnw("audit publish failed", "epoch", d.epoch, "error", err)
	}
}

// freshKey draws uint32 keys until one misses the account map.
func (d *Driver) freshKey() uint32 {
	for {
		key := d.rng.Uint32()
		if !d.engine.AccountExists(key) {
			return key
		}
	}
}

// expDraw samples an exponential budget with the given mean, truncated
// to whole units.
func (d *Driver) expDraw(mean float64) uint64 {
	return uint64(d.rng.ExpFloat64() * mean)
}

// uniformDraw samples uniformly from [0, max].
func (d *Driver) uniformDraw(max uint64) uint64 {
	if max+1 == 0 { // max == MaxUint64
		return d.rng.Uint64()
	}
	return d.rng.Uint64() % (max + 1)
}
