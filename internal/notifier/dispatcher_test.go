package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
)

type recordingSink struct {
	mu      sync.Mutex
	alerts  []Alert
	started chan struct{}
	release chan struct{}
	err     error
	closes  int
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Send(ctx context.Context, alert Alert) error {
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
	return s.err
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *recordingSink) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

func (s *recordingSink) received() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Alert(nil), s.alerts...)
}

func scam(id string, confidence float64) models.ScoredMessage {
	return models.ScoredMessage{
		ID:           id,
		Text:         "Click this link to claim",
		Label:        models.LabelScam,
		Confidence:   confidence,
		Explanations: models.Explanations{"Suspicious link"},
		CreatedAt:    time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher_DeliversQualifyingAlerts(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher([]Sink{sink}, 80, 8, zap.NewNop())

	assert.True(t, d.Enqueue(scam("a", 92.5), true))
	assert.True(t, d.Enqueue(scam("b", 80), false))
	assert.False(t, d.Enqueue(scam("c", 79.99), true))

	legit := scam("d", 99)
	legit.Label = models.LabelLegit
	assert.False(t, d.Enqueue(legit, true))

	require.NoError(t, d.Close(context.Background()))

	alerts := sink.received()
	require.Len(t, alerts, 2)
	assert.Equal(t, "a", alerts[0].MessageID)
	assert.Equal(t, 92.5, alerts[0].Probability)
	assert.True(t, alerts[0].Durable)
	assert.Equal(t, []string{"Suspicious link"}, alerts[0].Explanations)
	assert.Equal(t, "b", alerts[1].MessageID)
	assert.False(t, alerts[1].Durable)
	assert.Equal(t, 1, sink.closeCount())
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	sink := &recordingSink{started: make(chan struct{}, 4), release: make(chan struct{})}
	d := NewDispatcher([]Sink{sink}, 0, 1, zap.NewNop())

	require.True(t, d.Enqueue(scam("first", 90), true))
	<-sink.started // worker is busy with "first"

	assert.True(t, d.Enqueue(scam("second", 90), true))
	assert.False(t, d.Enqueue(scam("third", 90), true))

	close(sink.release)
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, sink.received(), 2)
}

func TestDispatcher_SinkErrorsAreSwallowed(t *testing.T) {
	failing := &recordingSink{err: errors.New("telegram down")}
	ok := &recordingSink{}
	d := NewDispatcher([]Sink{failing, ok}, 0, 4, zap.NewNop())

	assert.True(t, d.Enqueue(scam("a", 95), true))
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, failing.received(), 1)
	assert.Len(t, ok.received(), 1)
}

func TestDispatcher_EnqueueAfterClose(t *testing.T) {
	d := NewDispatcher([]Sink{&recordingSink{}}, 0, 4, zap.NewNop())
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	assert.False(t, d.Enqueue(scam("late", 99), true))
}

func TestDispatcher_NoSinks(t *testing.T) {
	d := NewDispatcher(nil, 0, 4, zap.NewNop())
	defer d.Close(context.Background())

	assert.False(t, d.Enqueue(scam("a", 99), true))
}

func TestDispatcher_CloseHonoursContext(t *testing.T) {
	sink := &recordingSink{started: make(chan struct{}, 1), release: make(chan struct{})}
	d := NewDispatcher([]Sink{sink}, 0, 1, zap.NewNop())
	require.True(t, d.Enqueue(scam("stuck", 90), true))
	<-sink.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)

	close(sink.release)
}

func TestDispatcher_CloseAfterTimeoutClosesSinksOnce(t *testing.T) {
	sink := &recordingSink{started: make(chan struct{}, 1), release: make(chan struct{})}
	d := NewDispatcher([]Sink{sink}, 0, 1, zap.NewNop())
	require.True(t, d.Enqueue(scam("slow", 90), true))
	<-sink.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
	assert.Equal(t, 0, sink.closeCount())

	close(sink.release)
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, sink.received(), 1)
	assert.Equal(t, 1, sink.closeCount())
	// The first Close's waiter finishes in the background and must not close again.
	assert.Never(t, func() bool { return sink.closeCount() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestAlert_Text(t *testing.T) {
	text := Alert{
		Message:      "Send me your OTP",
		Probability:  97.5,
		Explanations: []string{"Credential request"},
	}.Text()

	assert.Contains(t, text, "Scam detected (97.50%)")
	assert.Contains(t, text, "Send me your OTP")
	assert.Contains(t, text, "- Credential request")
	assert.Contains(t, text, "(not persisted)")
}
