package notify

import (
	"log/slog"
	"time"

	"apebrain-backend/internal/model"
)

// Job kinds.
const (
	KindNewOrder      = "new_order"      // operator inbox
	KindStatusChanged = "status_changed" // customer inbox
	KindDelivered     = "delivered"      // operator inbox
	KindPasswordReset = "password_reset" // customer inbox
)

// Job is one outbound email, serializable so it can ride a message queue.
type Job struct {
	Kind  string       `json:"kind"`
	Order *model.Order `json:"order,omitempty"`
	To    string       `json:"to,omitempty"`
	Link  string       `json:"link,omitempty"`
}

// Dispatcher accepts jobs without blocking the caller on delivery.
type Dispatcher interface {
	Enqueue(job Job)
}

// Processor renders a job and hands it to the mailer.
type Processor struct {
	Mailer        Mailer
	OperatorEmail string
	Log           *slog.Logger
}

const maxAttempts = 3

// Process renders and delivers one job.
func (p *Processor) Process(job Job) error {
	to, subject, body := p.render(job)
	if to == "" {
		p.Log.Warn("notification dropped, no recipient", "kind", job.Kind)
		return nil
	}
	return p.Mailer.Send(to, subject, body)
}

// ProcessWithRetry makes up to three delivery attempts with doubling backoff.
// The final error is logged, never returned upward: notifications must not
// fail the operation that triggered them.
func (p *Processor) ProcessWithRetry(job Job) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = p.Process(job); err == nil {
			p.Log.Info("notification sent", "kind", job.Kind, "attempt", attempt)
			return
		}
		if err == ErrNotConfigured {
			p.Log.Warn("smtp not configured, notification skipped", "kind", job.Kind)
			return
		}
		if attempt < maxAttempts {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}
	p.Log.Error("notification delivery failed", "kind", job.Kind, "error", err)
}

func (p *Processor) render(job Job) (to, subject, body string) {
	switch job.Kind {
	case KindNewOrder:
		subject, body = NewOrderEmail(job.Order)
		to = p.OperatorEmail
	case KindStatusChanged:
		subject, body = StatusChangedEmail(job.Order)
		to = job.Order.CustomerEmail
	case KindDelivered:
		subject, body = DeliveredEmail(job.Order)
		to = p.OperatorEmail
	case KindPasswordReset:
		subject, body = PasswordResetEmail(job.Link)
		to = job.To
	default:
		p.Log.Warn("unknown notification kind", "kind", job.Kind)
	}
	return to, subject, body
}

// DirectDispatcher processes jobs in-process. It is the fallback when no
// message broker is configured; delivery still happens off the request
// goroutine.
type DirectDispatcher struct {
	Proc *Processor
}

func (d *DirectDispatcher) Enqueue(job Job) {
	go d.Proc.ProcessWithRetry(job)
}
