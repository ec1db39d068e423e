package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

func TestRetryWith(t *testing.T) {
	tries := 0
	var waits []time.Duration

	err := RetryWith(context.Background(), backoff.NewConstantBackOff(time.Millisecond), func() error {
		tries++
		if tries < 3 {
			return errors.New("not yet")
		}
		return nil
	}, func(err error, d time.Duration) {
		waits = append(waits, d)
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, tries)
	assert.Len(t, waits, 2)
}

func TestRetryWith_Permanent(t *testing.T) {
	tries := 0
	errFatal := errors.New("fatal")

	err := RetryWith(context.Background(), backoff.NewConstantBackOff(time.Millisecond), func() error {
		tries++
		return backoff.Permanent(errFatal)
	}, nil)

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, tries)
}

func TestRetryGeneral_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryGeneral(ctx, func() error {
		return errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
}
