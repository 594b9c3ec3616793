package utils_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
	"github.com/stretchr/testify/assert"
)

var fast = utils.RetryConfig{MaxAttempts: 4, InitialDelay: time.Millisecond, Multiplier: 2}

func TestRetry(t *testing.T) {
	errTemp := errors.New("temporary")
	errPermanent := errors.New("permanent")

	testCases := []struct {
		name      string
		failures  int
		failWith  error
		wantCalls int
		wantErr   error
	}{
		{name: "first attempt succeeds", failures: 0, wantCalls: 1},
		{name: "succeeds after retries", failures: 2, failWith: errTemp, wantCalls: 3},
		{name: "gives up after max attempts", failures: 10, failWith: errTemp, wantCalls: 4, wantErr: errTemp},
		{name: "permanent error stops immediately", failures: 10, failWith: errPermanent, wantCalls: 1, wantErr: errPermanent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := utils.Retry(context.Background(), fast, func() error {
				calls++
				if calls <= tc.failures {
					return tc.failWith
				}
				return nil
			}, errPermanent)

			assert.Equal(t, tc.wantCalls, calls)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := utils.Retry(ctx, utils.RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour}, func() error {
		calls++
		return errors.New("down")
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}
