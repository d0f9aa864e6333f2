package dispatch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"syscli/internal/logger"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Operation
		wantErr bool
	}{
		{"release", "release", Release, false},
		{"update", "update", Update, false},
		{"case sensitive", "Release", 0, true},
		{"unknown", "deploy", 0, true},
		{"empty", "", 0, true},
		{"flag-like", "--release", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOperation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOperation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var ue *UsageError
				if !errors.As(err, &ue) {
					t.Fatalf("expected *UsageError, got %T", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseOperation(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOperationStrings(t *testing.T) {
	if got := strings.Join(OperationNames(), ","); got != "release,update" {
		t.Errorf("OperationNames() = %q", got)
	}
	for _, op := range Operations() {
		if !op.Valid() {
			t.Errorf("%v not valid", op)
		}
		if op.Summary() == "" {
			t.Errorf("%v has no summary", op)
		}
		back, err := ParseOperation(op.String())
		if err != nil || back != op {
			t.Errorf("ParseOperation(%q) = %v, %v", op.String(), back, err)
		}
	}
	var zero Operation
	if zero.Valid() {
		t.Error("zero Operation should be invalid")
	}
	if got := zero.String(); got != "Operation(0)" {
		t.Errorf("zero.String() = %q", got)
	}
	if got := zero.Summary(); got != "undeclared Operation(0)" {
		t.Errorf("zero.Summary() = %q", got)
	}
}

// recorder counts handler invocations per operation.
type recorder struct {
	calls map[Operation]int
	fail  map[Operation]error
}

func (r *recorder) handlers() Handlers {
	h := Handlers{}
	for _, op := range Operations() {
		h[op] = func(context.Context) error {
			r.calls[op]++
			return r.fail[op]
		}
	}
	return h
}

func newRecorder() *recorder {
	return &recorder{calls: map[Operation]int{}, fail: map[Operation]error{}}
}

func TestDispatchInvokesOnlySelectedHandler(t *testing.T) {
	for _, op := range Operations() {
		t.Run(op.String(), func(t *testing.T) {
			rec := newRecorder()
			var buf bytes.Buffer
			d := New(logger.New(&buf, logger.LevelTrace, logger.ColorNever), rec.handlers())

			if err := d.Dispatch(context.Background(), op); err != nil {
				t.Fatalf("Dispatch(%v) error: %v", op, err)
			}
			for _, other := range Operations() {
				want := 0
				if other == op {
					want = 1
				}
				if rec.calls[other] != want {
					t.Errorf("%v handler called %d times, want %d", other, rec.calls[other], want)
				}
			}
			wantLine := "[DEBUG] Dispatching " + op.String() + " command"
			if !strings.Contains(buf.String(), wantLine) {
				t.Errorf("log %q missing %q", buf.String(), wantLine)
			}
		})
	}
}

func TestDispatchWrapsHandlerError(t *testing.T) {
	rec := newRecorder()
	cause := errors.New("disk full")
	rec.fail[Update] = cause
	d := New(logger.Discard(), rec.handlers())

	err := d.Dispatch(context.Background(), Update)
	var he *HandlerError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HandlerError, got %T (%v)", err, err)
	}
	if he.Op != Update {
		t.Errorf("HandlerError.Op = %v, want update", he.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("HandlerError does not unwrap to the handler's error")
	}
	if got := err.Error(); got != "update failed: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDispatchUnknownOperation(t *testing.T) {
	d := New(logger.Discard(), newRecorder().handlers())
	var ue *UsageError
	if err := d.Dispatch(context.Background(), Operation(99)); !errors.As(err, &ue) {
		t.Fatalf("expected *UsageError, got %v", err)
	}
}

func TestNewPanicsOnIncompleteTable(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for missing update handler")
		}
	}()
	New(logger.Discard(), Handlers{Release: func(context.Context) error { return nil }})
}

func TestNewPanicsOnUndeclaredOperation(t *testing.T) {
	h := newRecorder().handlers()
	h[Operation(42)] = func(context.Context) error { return nil }
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for undeclared operation")
		}
	}()
	New(logger.Discard(), h)
}
