package backoff

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

var MaxRetries uint64 = 101

// RetryGeneral retries op with the default exponential policy until it
// succeeds, MaxRetries is reached or ctx is done.
func RetryGeneral(ctx context.Context, op backoff.Operation) error {
	return RetryWith(ctx, backoff.NewExponentialBackOff(), op, nil)
}

// RetryWith retries op with policy b, capped by MaxRetries. notify, when not
// nil, is called with each failure and the wait before the next try.
func RetryWith(ctx context.Context, b backoff.BackOff, op backoff.Operation, notify backoff.Notify) error {
	return backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(b, MaxRetries), ctx), notify)
}
