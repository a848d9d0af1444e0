package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      chan kafka.Message
	committed []kafka.Message
	closed    bool
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	ch := make(chan kafka.Message, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	return &fakeReader{msgs: ch}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-r.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func eventMessage(t *testing.T, offset int64) kafka.Message {
	t.Helper()
	ev, err := NewEvent("content.changed", "products", "storefront", map[string]string{})
	require.NoError(t, err)
	data, err := ev.Marshal()
	require.NoError(t, err)
	return kafka.Message{Value: data, Offset: offset}
}

func TestConsumer_ProcessSuccessCommits(t *testing.T) {
	cfg := ConsumerConfig{Topic: "t.ok", GroupID: "g.ok"}
	r := newFakeReader()
	var handled int
	c := newConsumer(r, cfg, func(context.Context, *Event) error {
		handled++
		return nil
	}, discardLogger())

	assert.True(t, c.process(context.Background(), eventMessage(t, 1)))
	assert.Equal(t, 1, handled)
	assert.Equal(t, 1, r.commits())
	assert.Equal(t, 1.0, testutil.ToFloat64(ConsumerMessagesProcessed.WithLabelValues("t.ok", "g.ok")))
}

func TestConsumer_ProcessRetriesThenSkips(t *testing.T) {
	cfg := ConsumerConfig{Topic: "t.fail", GroupID: "g.fail", MaxRetries: 3, RetryBackoff: time.Millisecond}
	r := newFakeReader()
	var attempts int
	c := newConsumer(r, cfg, func(context.Context, *Event) error {
		attempts++
		return errors.New("refresh failed")
	}, discardLogger())

	assert.True(t, c.process(context.Background(), eventMessage(t, 2)))
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 1, r.commits(), "failed message is committed so it cannot block the partition")
	assert.Equal(t, 1.0, testutil.ToFloat64(ConsumerMessagesFailed.WithLabelValues("t.fail", "g.fail")))
}

func TestConsumer_ProcessUndecodableCommits(t *testing.T) {
	cfg := ConsumerConfig{Topic: "t.bad", GroupID: "g.bad"}
	r := newFakeReader()
	c := newConsumer(r, cfg, func(context.Context, *Event) error {
		t.Fatal("handler must not run for undecodable message")
		return nil
	}, discardLogger())

	assert.True(t, c.process(context.Background(), kafka.Message{Value: []byte("{")}))
	assert.Equal(t, 1, r.commits())
}

func TestConsumer_ProcessStopsOnCancelDuringBackoff(t *testing.T) {
	cfg := ConsumerConfig{Topic: "t.cancel", GroupID: "g.cancel", MaxRetries: 3, RetryBackoff: time.Hour}
	r := newFakeReader()
	ctx, cancel := context.WithCancel(context.Background())
	c := newConsumer(r, cfg, func(context.Context, *Event) error {
		cancel()
		return errors.New("boom")
	}, discardLogger())

	assert.False(t, c.process(ctx, eventMessage(t, 3)))
	assert.Zero(t, r.commits())
}

func TestConsumer_StartDrainsUntilCanceled(t *testing.T) {
	r := newFakeReader(eventMessage(t, 1), eventMessage(t, 2))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{}, 2)
	c := newConsumer(r, ConsumerConfig{Topic: "t.start", GroupID: "g.start"}, func(context.Context, *Event) error {
		done <- struct{}{}
		return nil
	}, discardLogger())

	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(ctx) }()

	<-done
	<-done
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Equal(t, 2, r.commits())
	assert.True(t, r.closed)
}

func TestConsumer_DefaultsApplied(t *testing.T) {
	c := newConsumer(newFakeReader(), ConsumerConfig{}, nil, discardLogger())
	assert.Equal(t, defaultHandlerRetries, c.retries)
	assert.Equal(t, 100*time.Millisecond, c.backoff)
}
