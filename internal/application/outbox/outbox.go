// Package outbox decouples outbound email from the request path. Handlers
// enqueue and return immediately; a worker delivers with retries.
package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

// Mailer is the transport the outbox delivers through.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Message is one queued email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Outbox is an in-process mail queue with exponential-backoff retry.
type Outbox struct {
	mailer     Mailer
	ch         chan Message
	wg         sync.WaitGroup
	maxRetries uint64
	newBackoff func() retry.Backoff
}

// New starts an outbox with the given queue capacity and one delivery worker.
func New(mailer Mailer, queueSize int) *Outbox {
	return newOutbox(mailer, queueSize, 4, func() retry.Backoff {
		return retry.NewExponential(500 * time.Millisecond)
	})
}

func newOutbox(mailer Mailer, queueSize int, maxRetries uint64, newBackoff func() retry.Backoff) *Outbox {
	o := &Outbox{
		mailer:     mailer,
		ch:         make(chan Message, queueSize),
		maxRetries: maxRetries,
		newBackoff: newBackoff,
	}
	o.wg.Add(1)
	go o.worker()
	return o
}

// Enqueue queues msg for delivery without blocking. When the queue is full the
// message is dropped with a warning; callers never wait on SMTP.
func (o *Outbox) Enqueue(msg Message) {
	select {
	case o.ch <- msg:
	default:
		slog.Warn("mail outbox full, dropping message", "to", msg.To, "subject", msg.Subject)
	}
}

// Close stops accepting messages and waits until the queue is drained.
func (o *Outbox) Close() {
	close(o.ch)
	o.wg.Wait()
}

func (o *Outbox) worker() {
	defer o.wg.Done()
	for msg := range o.ch {
		o.deliver(msg)
	}
}

func (o *Outbox) deliver(msg Message) {
	backoff := retry.WithMaxRetries(o.maxRetries, o.newBackoff())
	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		if err := o.mailer.Send(msg.To, msg.Subject, msg.Body); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.Error("mail delivery failed, giving up", "to", msg.To, "subject", msg.Subject, "err", err)
	}
}
