package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	fail bool
}

func (testMessage) Type() string { return "postadmin.test.message" }

func (m testMessage) Validate() error {
	if m.fail {
		return errors.New("message invalid")
	}
	return nil
}

func TestHandlerExecutesFunction(t *testing.T) {
	executed := false
	handler := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		executed = true
		return nil
	})

	if err := handler.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !executed {
		t.Fatalf("wrapped function not called")
	}
}

func TestHandlerRejectsInvalidMessage(t *testing.T) {
	handler := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		t.Fatalf("invalid message must not reach the function")
		return nil
	})

	err := handler.Execute(context.Background(), testMessage{fail: true})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	boom := errors.New("boom")
	handler := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return boom
	})

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("wrapped error must keep its cause")
	}
}

func TestHandlerNilContext(t *testing.T) {
	handler := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		if ctx == nil {
			t.Fatalf("context not defaulted")
		}
		return nil
	})

	var missing context.Context
	if err := handler.Execute(missing, testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestHandlerTimeoutApplies(t *testing.T) {
	handler := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatalf("expected deadline error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline cause, got %v", err)
	}
}

func TestHandlerPanicsWithoutFunction(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on nil function")
		}
	}()
	NewHandler[testMessage](nil)
}
