package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
		{40, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := ExponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("ExponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"connection closed", errors.New("connection closed by server"), true},
		{"broken pipe", errors.New("write tcp 127.0.0.1:5672: write: broken pipe"), true},
		{"closed network connection", errors.New("read tcp 127.0.0.1:5672: use of closed network connection"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"channel not open", errors.New("Exception (504) Reason: \"channel/connection is not open\""), true},
		{"handler error", errors.New("recompute budgets: no such table"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConnectionError(tt.err); got != tt.expected {
				t.Errorf("IsConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestTransactionEventMessageRoundTrip(t *testing.T) {
	msg := NewTransactionEventMessage("tx-1", "user-1", ActionCreated)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := TransactionEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}

	if parsed.ID != msg.ID {
		t.Errorf("ID = %v, want %v", parsed.ID, msg.ID)
	}
	if parsed.UserID != msg.UserID {
		t.Errorf("UserID = %v, want %v", parsed.UserID, msg.UserID)
	}
	if parsed.Action != ActionCreated {
		t.Errorf("Action = %v, want %v", parsed.Action, ActionCreated)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestTransactionEventMessageInvalidJSON(t *testing.T) {
	if _, err := TransactionEventMessageFromJSON([]byte(`{"id": 42}`)); err == nil {
		t.Error("expected error for mistyped JSON")
	}
}
