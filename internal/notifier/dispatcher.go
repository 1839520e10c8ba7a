package notifier

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
)

const (
	defaultQueueSize   = 64
	defaultSendTimeout = 5 * time.Second
)

// Alert describes a message the scoring engine classified as a scam.
type Alert struct {
	MessageID    string    `json:"id"`
	Message      string    `json:"message"`
	Probability  float64   `json:"probability"`
	Explanations []string  `json:"explanations"`
	Durable      bool      `json:"durable"`
	DetectedAt   time.Time `json:"detectedAt"`
}

// Text renders the alert for human-facing sinks.
func (a Alert) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scam detected (%.2f%%)\n\n%s", a.Probability, a.Message)
	if len(a.Explanations) > 0 {
		b.WriteString("\n\nReasons:")
		for _, e := range a.Explanations {
			b.WriteString("\n- ")
			b.WriteString(e)
		}
	}
	if !a.Durable {
		b.WriteString("\n\n(not persisted)")
	}
	return b.String()
}

// Sink delivers alerts to one destination.
type Sink interface {
	Name() string
	Send(ctx context.Context, alert Alert) error
}

// Dispatcher fans scam alerts out to its sinks on a single background worker.
// Enqueue never blocks; alerts are dropped when the queue is full.
type Dispatcher struct {
	sinks          []Sink
	minProbability float64
	sendTimeout    time.Duration
	logger         *zap.Logger

	queue     chan Alert
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	sinksOnce sync.Once
}

func NewDispatcher(sinks []Sink, minProbability float64, queueSize int, logger *zap.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &Dispatcher{
		sinks:          sinks,
		minProbability: minProbability,
		sendTimeout:    defaultSendTimeout,
		logger:         logger,
		queue:          make(chan Alert, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue reports whether an alert was queued for msg.
func (d *Dispatcher) Enqueue(msg models.ScoredMessage, durable bool) bool {
	if msg.Label != models.LabelScam || msg.Confidence < d.minProbability || len(d.sinks) == 0 {
		return false
	}

	alert := Alert{
		MessageID:    msg.ID,
		Message:      msg.Text,
		Probability:  msg.Confidence,
		Explanations: append([]string{}, msg.Explanations...),
		Durable:      durable,
		DetectedAt:   msg.CreatedAt,
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	select {
	case d.queue <- alert:
		return true
	default:
		d.logger.Warn("Alert queue full, dropping alert", zap.String("message_id", msg.ID))
		return false
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for alert := range d.queue {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
			if err := sink.Send(ctx, alert); err != nil {
				d.logger.Warn("Failed to deliver alert",
					zap.String("sink", sink.Name()),
					zap.String("message_id", alert.MessageID),
					zap.Error(err))
			}
			cancel()
		}
	}
}

// Close stops accepting alerts and waits for queued ones to be delivered or
// for ctx to end. It may be called again after a timeout; sinks are closed
// once.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		d.sinksOnce.Do(d.closeSinks)
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("alert dispatcher drain: %w", ctx.Err())
	}
}

func (d *Dispatcher) closeSinks() {
	for _, sink := range d.sinks {
		closer, ok := sink.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			d.logger.Warn("Failed to close alert sink", zap.String("sink", sink.Name()), zap.Error(err))
		}
	}
}
