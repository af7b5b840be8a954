package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/middleware"
)

// DefaultPollInterval is how often a pending payment is checked at the gateway.
const DefaultPollInterval = 10 * time.Second

// paymentSettler is the part of the payment service the poller drives.
type paymentSettler interface {
	ConfirmPayment(ctx context.Context, userID string, amount int64, reference string) (*domain.PageTransaction, error)
	ExpirePayment(ctx context.Context, userID string, reference string) (*domain.Payment, error)
}

// PaymentPoller runs one cancellable task per pending payment. A task ends when the
// gateway reports the payment paid or failed, when the payment expires, when Stop is
// called for its reference, or when StopAll shuts the poller down. Confirmation is
// idempotent, so a task that fires after another path confirmed the payment is harmless.
type PaymentPoller struct {
	gateway  portssvc.PaymentGateway
	settler  paymentSettler
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	tasks  map[string]*pollTask
	closed bool
	wg     sync.WaitGroup
}

type pollTask struct {
	cancel context.CancelFunc
}

// NewPaymentPoller creates a poller. A nil logger uses slog.Default().
func NewPaymentPoller(gateway portssvc.PaymentGateway, settler paymentSettler, interval time.Duration, logger *slog.Logger) *PaymentPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentPoller{
		gateway:  gateway,
		settler:  settler,
		interval: interval,
		logger:   logger,
		tasks:    make(map[string]*pollTask),
	}
}

// Watch starts polling payment unless it is already watched or the poller is closed.
func (p *PaymentPoller) Watch(payment domain.Payment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if _, ok := p.tasks[payment.Reference]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctx = middleware.WithLogger(ctx, p.logger.With(slog.String("reference", payment.Reference)))
	task := &pollTask{cancel: cancel}
	p.tasks[payment.Reference] = task
	activePaymentPolls.Inc()

	p.wg.Add(1)
	go p.run(ctx, task, payment)
}

// Stop cancels the task for reference, if any. It does not wait for it to exit.
func (p *PaymentPoller) Stop(reference string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if task, ok := p.tasks[reference]; ok {
		task.cancel()
		delete(p.tasks, reference)
		activePaymentPolls.Dec()
	}
}

// StopAll cancels every task and waits for them to exit. Later Watch calls are ignored.
func (p *PaymentPoller) StopAll() {
	p.mu.Lock()
	p.closed = true
	for ref, task := range p.tasks {
		task.cancel()
		delete(p.tasks, ref)
		activePaymentPolls.Dec()
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Active returns the number of payments currently being polled.
func (p *PaymentPoller) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

func (p *PaymentPoller) run(ctx context.Context, task *pollTask, payment domain.Payment) {
	defer p.wg.Done()
	defer p.forget(payment.Reference, task)
	logger := middleware.GetLoggerFromCtx(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	expiry := time.NewTimer(time.Until(payment.ExpiresAt))
	defer expiry.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-expiry.C:
			// Expiry must still be recorded even though this task is ending.
			if _, err := p.settler.ExpirePayment(context.WithoutCancel(ctx), payment.UserID, payment.Reference); err != nil {
				logger.Error("Failed to expire payment", slog.String("error", err.Error()))
			}
			return
		case <-ticker.C:
			switch p.poll(ctx, logger, payment) {
			case pollFinished:
				return
			case pollAwaitExpiry:
				// Nothing more to learn from the gateway; the timer still records expiry.
				ticker.Stop()
			}
		}
	}
}

type pollOutcome int

const (
	pollAgain pollOutcome = iota
	pollFinished
	pollAwaitExpiry
)

// poll checks the gateway once.
func (p *PaymentPoller) poll(ctx context.Context, logger *slog.Logger, payment domain.Payment) pollOutcome {
	status, err := p.gateway.CheckPayment(ctx, payment.Reference)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("Gateway status check failed", slog.String("error", err.Error()))
		}
		return pollAgain
	}

	switch status.Status {
	case domain.GatewayPaid:
		_, err := p.settler.ConfirmPayment(ctx, payment.UserID, status.Amount, payment.Reference)
		switch {
		case err == nil:
			return pollFinished
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Paid payment could not be confirmed", slog.String("error", err.Error()))
			return pollFinished
		default:
			logger.Error("Failed to confirm paid payment", slog.String("error", err.Error()))
			return pollAgain
		}
	case domain.GatewayFailed:
		logger.Info("Gateway reported payment failed")
		return pollAwaitExpiry
	default:
		return pollAgain
	}
}

// forget removes task from the registry if it is still the one registered for reference.
func (p *PaymentPoller) forget(reference string, task *pollTask) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tasks[reference] == task {
		delete(p.tasks, reference)
		activePaymentPolls.Dec()
	}
	task.cancel()
}
