package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"strings"
	"syscall"
	"time"
)

// Policy controls how Do spaces its attempts.
type Policy struct {
	// Attempts is the total try count including the first. Zero means 3.
	Attempts int

	// Base is the delay before the first retry, doubled each attempt.
	// Zero means 500ms.
	Base time.Duration

	// Cap bounds the backoff delay. Zero means 15s.
	Cap time.Duration

	// Retryable decides whether an error is worth another attempt.
	// Nil means Transient.
	Retryable func(error) bool
}

// Do runs op, retrying transient failures with exponential backoff and
// jitter. Context cancellation stops the loop immediately.
func Do(ctx context.Context, p Policy, op func(context.Context) error) error {
	if p.Attempts <= 0 {
		p.Attempts = 3
	}
	if p.Base <= 0 {
		p.Base = 500 * time.Millisecond
	}
	if p.Cap <= 0 {
		p.Cap = 15 * time.Second
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = Transient
	}

	var lastErr error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(lastErr) || attempt == p.Attempts-1 {
			return lastErr
		}

		timer := time.NewTimer(backoff(attempt, p.Base, p.Cap))
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}

func backoff(attempt int, base, cap time.Duration) time.Duration {
	d := float64(base) * math.Pow(2, float64(attempt))
	if d > float64(cap) {
		d = float64(cap)
	}
	// up to 25% jitter either way
	d += (rand.Float64() - 0.5) * d * 0.5
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// Transient reports whether err looks like a temporary network failure:
// a timeout, a dropped connection, or a flaky resolver.
func Transient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// StatusRetryable reports whether an HTTP status is worth retrying.
func StatusRetryable(code int) bool {
	switch code {
	case 408, 429, 500, 502, 503, 504:
		return true
	}
	return false
}
