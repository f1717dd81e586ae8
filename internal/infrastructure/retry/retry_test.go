package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fastConfig keeps tests quick while still exercising the backoff loop.
func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: 1 * time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoWithResult_FirstFetchSucceeds(t *testing.T) {
	var fetches int32

	snapshot, err := DoWithResult(context.Background(), func() ([]string, error) {
		atomic.AddInt32(&fetches, 1)
		return []string{"GVA-IBZ", "LIN-PMI"}, nil
	}, FeedConfig)

	assert.NoError(t, err)
	assert.Len(t, snapshot, 2)
	assert.Equal(t, int32(1), fetches)
}

func TestDoWithResult_RecoversFromTransientFailures(t *testing.T) {
	var fetches int32

	snapshot, err := DoWithResult(context.Background(), func() (string, error) {
		if atomic.AddInt32(&fetches, 1) < 3 {
			return "", errors.New("connection reset")
		}
		return "snapshot", nil
	}, fastConfig(5))

	assert.NoError(t, err)
	assert.Equal(t, "snapshot", snapshot)
	assert.Equal(t, int32(3), fetches)
}

func TestDoWithResult_ExhaustsPolicy(t *testing.T) {
	var fetches int32
	feedDown := errors.New("upstream returned 503")

	result, err := DoWithResult(context.Background(), func() (string, error) {
		atomic.AddInt32(&fetches, 1)
		return "partial", feedDown
	}, fastConfig(3))

	assert.Equal(t, feedDown, err)
	assert.Equal(t, "partial", result, "the last result comes back with the error")
	assert.Equal(t, int32(3), fetches)
}

func TestDoWithResult_StopsOnPermanentError(t *testing.T) {
	var fetches int32
	badBody := NewPermanent(errors.New("feed body is not JSON"))

	_, err := DoWithResult(context.Background(), func() (string, error) {
		if atomic.AddInt32(&fetches, 1) == 1 {
			return "", errors.New("timeout awaiting headers")
		}
		return "", badBody
	}, fastConfig(5).WithRetryIf(SkipPermanent))

	assert.True(t, IsPermanent(err), "a malformed body is not worth more fetches")
	assert.Equal(t, int32(2), fetches)
}

func TestDoWithResult_ContextCancelledMidBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var fetches int32

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := DoWithResult(ctx, func() (string, error) {
		atomic.AddInt32(&fetches, 1)
		return "", errors.New("connection refused")
	}, Config{
		MaxAttempts:  10,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	})

	assert.Equal(t, context.Canceled, err)
	assert.GreaterOrEqual(t, fetches, int32(1))
}

func TestDoWithResult_ContextAlreadyDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var fetches int32
	_, err := DoWithResult(ctx, func() (string, error) {
		atomic.AddInt32(&fetches, 1)
		return "snapshot", nil
	}, FeedConfig)

	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, int32(0), fetches, "a dead request never reaches the feed")
}

func TestDoWithResult_DeadlineExceeded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := DoWithResult(ctx, func() (string, error) {
		return "", errors.New("slow feed")
	}, Config{
		MaxAttempts:  10,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	})

	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestDoWithResult_ZeroAttemptsMeansOne(t *testing.T) {
	var fetches int32

	_, err := DoWithResult(context.Background(), func() (string, error) {
		atomic.AddInt32(&fetches, 1)
		return "snapshot", nil
	}, Config{})

	assert.NoError(t, err)
	assert.Equal(t, int32(1), fetches)
}

func TestDoWithResult_BackoffGrows(t *testing.T) {
	var starts []time.Duration
	begin := time.Now()

	_, err := DoWithResult(context.Background(), func() (string, error) {
		starts = append(starts, time.Since(begin))
		if len(starts) < 4 {
			return "", errors.New("flaky")
		}
		return "snapshot", nil
	}, Config{
		MaxAttempts:  5,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	})

	assert.NoError(t, err)
	// Pauses run 10ms, 20ms, 40ms; the attempt start times must spread out
	// accordingly, with slack for scheduling.
	if assert.Len(t, starts, 4) {
		assert.Less(t, starts[0], 5*time.Millisecond)
		assert.Greater(t, starts[1], 8*time.Millisecond)
		assert.Greater(t, starts[2], 25*time.Millisecond)
		assert.Greater(t, starts[3], 55*time.Millisecond)
	}
}

func TestDoWithResult_MaxDelayCapsBackoff(t *testing.T) {
	begin := time.Now()

	_, err := DoWithResult(context.Background(), func() (string, error) {
		return "", errors.New("down")
	}, Config{
		MaxAttempts:  5,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     60 * time.Millisecond,
		Multiplier:   10.0,
	})

	assert.Error(t, err)
	// Four pauses capped at 60ms each; without the cap the multiplier would
	// push the run past 50 seconds.
	assert.Less(t, time.Since(begin), 400*time.Millisecond)
}

func TestPermanent_WrapsAndUnwraps(t *testing.T) {
	cause := errors.New("feed body is not JSON")
	err := NewPermanent(cause)

	assert.True(t, IsPermanent(err))
	assert.Equal(t, "feed body is not JSON", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestPermanent_NilStaysNil(t *testing.T) {
	assert.Nil(t, NewPermanent(nil))
}

func TestIsPermanent_SeesThroughWrapping(t *testing.T) {
	inner := NewPermanent(errors.New("bad payload"))
	wrapped := errors.Join(errors.New("fetch failed"), inner)

	assert.True(t, IsPermanent(wrapped))
	assert.False(t, IsPermanent(errors.New("connection reset")))
	assert.False(t, IsPermanent(nil))
}

func TestSkipPermanent(t *testing.T) {
	assert.True(t, SkipPermanent(errors.New("connection reset")))
	assert.False(t, SkipPermanent(NewPermanent(errors.New("bad payload"))))
}

func TestPermanent_EmptyMessage(t *testing.T) {
	p := &Permanent{}
	assert.Equal(t, "permanent error", p.Error())
}

func TestFeedConfig_Policy(t *testing.T) {
	assert.Equal(t, 3, FeedConfig.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, FeedConfig.InitialDelay)
	assert.Equal(t, 5*time.Second, FeedConfig.MaxDelay)
	assert.Equal(t, 0.2, FeedConfig.JitterFactor)
	assert.Nil(t, FeedConfig.RetryIf, "the feed client attaches its own predicate")
}

func TestConfig_WithRetryIfCopies(t *testing.T) {
	base := FeedConfig
	derived := base.WithRetryIf(SkipPermanent)

	assert.NotNil(t, derived.RetryIf)
	assert.Nil(t, base.RetryIf, "the shipped policy must stay untouched")
}
