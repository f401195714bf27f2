package catalog

import (
	"context"
	"errors"
	"testing"
)

type codedError int

func (e codedError) Error() string { return "sqlite error" }
func (e codedError) Code() int     { return int(e) }

func TestIsSQLiteBusy(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{codedError(5), true},
		{codedError(5 | 1<<8), true},
		{codedError(1), false},
		{errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{errors.New("constraint failed"), false},
	}
	for _, tc := range cases {
		if got := isSQLiteBusy(tc.err); got != tc.want {
			t.Fatalf("isSQLiteBusy(%v) = %v want %v", tc.err, got, tc.want)
		}
	}
}

func TestRetryOnBusy(t *testing.T) {
	calls := 0
	err := retryOnBusy(context.Background(), func() error {
		calls++
		if calls < 3 {
			return codedError(5)
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("expected success after 3 calls, got calls=%d err=%v", calls, err)
	}

	calls = 0
	permanent := errors.New("constraint failed")
	if err := retryOnBusy(context.Background(), func() error {
		calls++
		return permanent
	}); !errors.Is(err, permanent) || calls != 1 {
		t.Fatalf("non-busy errors should not retry: calls=%d err=%v", calls, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := retryOnBusy(ctx, func() error { return codedError(5) }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
