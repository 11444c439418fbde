package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublishEncodesJSONWithKey(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "predictions", "gzip", prometheus.NewRegistry())

	if err := p.Publish(context.Background(), "AAPL", map[string]float64{"price": 101.5}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "AAPL" {
		t.Fatalf("unexpected key %q", w.msgs[0].Key)
	}
	var body map[string]float64
	if err := json.Unmarshal(w.msgs[0].Value, &body); err != nil || body["price"] != 101.5 {
		t.Fatalf("unexpected body %s (%v)", w.msgs[0].Value, err)
	}
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := newProducer(&fakeWriter{err: boom}, "predictions", "gzip", prometheus.NewRegistry())
	if err := p.Publish(context.Background(), "AAPL", 1); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(WithTopic("t")); err == nil {
		t.Fatalf("expected error without brokers")
	}
}
