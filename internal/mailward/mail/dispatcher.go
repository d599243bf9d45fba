package mail

import (
	"context"
	"log/slog"
	"time"
)

// sendTimeout bounds a single delivery attempt so one stuck provider
// call can't wedge the worker.
const sendTimeout = 30 * time.Second

// Dispatcher queues composed messages and delivers them on a background
// worker. Enqueueing never blocks: when the queue is full the message is
// dropped and the caller is told, so token issuance latency stays
// independent of the mail provider.
type Dispatcher struct {
	Sender Sender
	Logger *slog.Logger

	// MaxAttempts is how many times a message is tried before it is
	// dropped. RetryDelay is the base wait between attempts and grows
	// linearly with the attempt number.
	MaxAttempts int
	RetryDelay  time.Duration

	queue chan Message

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewDispatcher creates a dispatcher with the given queue capacity.
// If queueSize is 0 or negative, defaults to 64.
func NewDispatcher(sender Sender, logger *slog.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}

	return &Dispatcher{
		Sender:      sender,
		Logger:      logger,
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
		queue:       make(chan Message, queueSize),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins the background delivery worker. This is non-blocking.
// Call Stop() to gracefully shutdown the worker.
func (d *Dispatcher) Start() {
	go d.run()
	d.Logger.Info("mail dispatcher started", "queue_size", cap(d.queue))
}

// Stop gracefully shuts down the worker. Messages still queued get one
// final delivery attempt each, then Stop returns.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	<-d.doneCh
	d.Logger.Info("mail dispatcher stopped")
}

// Enqueue hands a message to the worker. Returns false when the queue
// is full or the dispatcher is stopping; the message is not delivered
// in that case.
func (d *Dispatcher) Enqueue(msg Message) bool {
	select {
	case <-d.stopCh:
		return false
	default:
	}

	select {
	case d.queue <- msg:
		return true
	default:
		return false
	}
}

// run is the main background worker loop.
func (d *Dispatcher) run() {
	defer close(d.doneCh)

	for {
		select {
		case msg := <-d.queue:
			d.deliver(msg)
		case <-d.stopCh:
			d.drain()
			return
		}
	}
}

// drain empties the queue during shutdown, giving each remaining
// message a single attempt so Stop stays bounded.
func (d *Dispatcher) drain() {
	for {
		select {
		case msg := <-d.queue:
			if err := d.attempt(msg); err != nil {
				d.Logger.Error("mail delivery failed during shutdown",
					"to", msg.To, "subject", msg.Subject, "error", err)
			}
		default:
			return
		}
	}
}

// deliver tries a message up to MaxAttempts times. Waits between
// attempts are interrupted by Stop.
func (d *Dispatcher) deliver(msg Message) {
	for i := 1; i <= d.MaxAttempts; i++ {
		err := d.attempt(msg)
		if err == nil {
			d.Logger.Debug("mail delivered", "to", msg.To, "subject", msg.Subject, "attempt", i)
			return
		}

		d.Logger.Error("mail delivery failed",
			"to", msg.To, "subject", msg.Subject, "attempt", i, "error", err)

		if i == d.MaxAttempts {
			d.Logger.Error("mail dropped after final attempt", "to", msg.To, "subject", msg.Subject)
			return
		}

		select {
		case <-time.After(d.RetryDelay * time.Duration(i)):
		case <-d.stopCh:
			return
		}
	}
}

// attempt performs one bounded delivery attempt.
func (d *Dispatcher) attempt(msg Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	return d.Sender.Send(ctx, msg)
}
