package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/renacod/backend/internal/domain"
)

var notifications = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "contact_notifications_total",
		Help: "New-contact notifications by outcome (sent, failed, dropped).",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(notifications)
}

// DefaultTimeout bounds one delivery attempt when none is configured.
const DefaultTimeout = 15 * time.Second

// Dispatcher runs notifications in the background.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher returns a dispatcher delivering through n. A non-positive
// timeout selects DefaultTimeout.
func NewDispatcher(n Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{notifier: n, timeout: timeout}
}

// Dispatch starts delivery for c and returns immediately. After Close the
// notification is dropped and logged.
func (d *Dispatcher) Dispatch(c domain.Contact) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		notifications.WithLabelValues("dropped").Inc()
		log.Warn().Str("contact_id", c.ID).Msg("notification dropped: dispatcher closed")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		d.deliver(c)
	}()
}

func (d *Dispatcher) deliver(c domain.Contact) {
	defer func() {
		if r := recover(); r != nil {
			notifications.WithLabelValues("failed").Inc()
			log.Error().Str("contact_id", c.ID).Str("panic", fmt.Sprint(r)).Msg("notification panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	if err := d.notifier.Notify(ctx, c); err != nil {
		notifications.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("contact_id", c.ID).Dur("took", time.Since(start)).Msg("contact notification failed")
		return
	}
	notifications.WithLabelValues("sent").Inc()
	log.Debug().Str("contact_id", c.ID).Dur("took", time.Since(start)).Msg("contact notification sent")
}

// Close stops accepting work and waits for in-flight deliveries or ctx,
// whichever comes first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
