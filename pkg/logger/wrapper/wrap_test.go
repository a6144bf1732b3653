package wrap

import (
	"context"
	"errors"
	"testing"
)

func TestError_KeepsChainAndContext(t *testing.T) {
	sentinel := errors.New("boom")

	ctx := WithAction(context.Background(), "inner")
	ctx = WithRequestID(ctx, "req-1")
	err := Error(ctx, sentinel)

	if !errors.Is(err, sentinel) {
		t.Fatalf("wrapped error must unwrap to sentinel")
	}

	outer := WithAction(context.Background(), "outer")
	got := FromContext(ErrorCtx(outer, err))
	if got.Action != "inner" || got.RequestID != "req-1" {
		t.Fatalf("unexpected log ctx: %+v", got)
	}
}

func TestError_Nil(t *testing.T) {
	if Error(context.Background(), nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
}

func TestWithLogCtx_Merges(t *testing.T) {
	ctx := WithLogCtx(context.Background(), LogCtx{Action: "a", RequestID: "r"})
	ctx = WithLogCtx(ctx, LogCtx{ReportID: "rep"})

	got := FromContext(ctx)
	if got.Action != "a" || got.RequestID != "r" || got.ReportID != "rep" {
		t.Fatalf("unexpected merge result: %+v", got)
	}
}
