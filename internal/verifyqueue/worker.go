package verifyqueue

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ignite/contactminer/internal/collab"
	"github.com/ignite/contactminer/internal/domain"
	"github.com/ignite/contactminer/internal/pkg/distlock"
	"github.com/ignite/contactminer/internal/pkg/logger"
)

const (
	DefaultPollInterval = 15 * time.Second
	DefaultBatchSize    = 50
	DefaultStaleAge     = 5 * time.Minute
)

// PersonVerificationSetter is the narrow slice of person.Repository the
// worker needs. Declared locally so this package doesn't import the person
// service just to name a method it already implements.
type PersonVerificationSetter interface {
	SetVerification(ctx context.Context, tenantID, personID string, status domain.VerificationStatus, verifiedAt time.Time) error
}

// statusMap translates a collaborator's raw verification status into the
// canonical set a Person's VerificationStatus may hold. Unrecognized
// values map to unknown rather than being rejected.
var statusMap = map[string]domain.VerificationStatus{
	"valid":     domain.VerificationValid,
	"invalid":   domain.VerificationInvalid,
	"catch-all": domain.VerificationCatchall,
	"catchall":  domain.VerificationCatchall,
	"risky":     domain.VerificationRisky,
	"unknown":   domain.VerificationUnknown,
}

// Config controls Worker construction.
type Config struct {
	Repository Repository
	Persons    PersonVerificationSetter
	Verifier   collab.MailboxVerifier
	Lock       distlock.DistLock // optional; nil means single-consumer deployment
	BatchSize  int
	Interval   time.Duration
	StaleAge   time.Duration
}

// Worker claims pending verification tasks in batches and drives them
// through a mailbox verification collaborator, grounded on the teacher's
// internal/worker/email_verifier.go poll loop (MX pre-filter + provider-API
// phases collapse here into one collaborator call) and
// internal/worker/queue_recovery.go's stuck-item reclaim on startup.
type Worker struct {
	repo      Repository
	persons   PersonVerificationSetter
	verifier  collab.MailboxVerifier
	breaker   *gobreaker.CircuitBreaker
	lock      distlock.DistLock
	batchSize int
	interval  time.Duration
	staleAge  time.Duration

	cancel context.CancelFunc
}

// NewWorker builds a Worker. BatchSize/Interval/StaleAge default to
// DefaultBatchSize/DefaultPollInterval/DefaultStaleAge when unset.
func NewWorker(cfg Config) *Worker {
	w := &Worker{
		repo:      cfg.Repository,
		persons:   cfg.Persons,
		verifier:  cfg.Verifier,
		lock:      cfg.Lock,
		batchSize: cfg.BatchSize,
		interval:  cfg.Interval,
		staleAge:  cfg.StaleAge,
	}
	if w.batchSize <= 0 {
		w.batchSize = DefaultBatchSize
	}
	if w.interval <= 0 {
		w.interval = DefaultPollInterval
	}
	if w.staleAge <= 0 {
		w.staleAge = DefaultStaleAge
	}
	w.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mailbox-verifier",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return w
}

// Start reclaims any stuck tasks left over from a prior crash, runs one
// pass immediately, then polls every Interval until ctx is cancelled or
// Stop is called.
func (w *Worker) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	go func() {
		if n, err := w.repo.ReclaimStuck(runCtx, w.staleAge); err != nil {
			logger.Warn("verification queue startup reclaim failed", "error", err.Error())
		} else if n > 0 {
			logger.Info("reclaimed stuck verification tasks", "count", n)
		}

		w.runOnce(runCtx)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				w.runOnce(runCtx)
			}
		}
	}()
}

// Stop halts the poll loop. Safe to call even if Start was never called.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	if w.lock != nil {
		acquired, err := w.lock.Acquire(ctx)
		if err != nil || !acquired {
			return
		}
		defer w.lock.Release(ctx)
	}

	tasks, err := w.repo.ClaimBatch(ctx, w.batchSize)
	if err != nil {
		logger.Warn("claim verification batch failed", "error", err.Error())
		return
	}
	for _, task := range tasks {
		if ctx.Err() != nil {
			return
		}
		w.process(ctx, task)
	}
}

func (w *Worker) process(ctx context.Context, task domain.VerificationTask) {
	raw, err := w.breaker.Execute(func() (interface{}, error) {
		return w.verifier.Verify(ctx, task.Email)
	})
	if err != nil {
		if ferr := w.repo.Fail(ctx, task.ID, err.Error()); ferr != nil {
			logger.Warn("mark verification task failed errored", "task_id", task.ID, "error", ferr.Error())
		}
		return
	}
	result := raw.(collab.VerifyResult)

	status, ok := statusMap[result.Status]
	if !ok {
		status = domain.VerificationUnknown
	}
	if err := w.persons.SetVerification(ctx, task.TenantID, task.PersonID, status, time.Now().UTC()); err != nil {
		logger.Warn("set person verification failed", "person_id", task.PersonID, "error", err.Error())
	}
	if err := w.repo.Complete(ctx, task.ID, result.RawCode); err != nil {
		logger.Warn("mark verification task complete errored", "task_id", task.ID, "error", err.Error())
	}
}
