package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// retryPolicy is the exponential backoff applied to dataset downloads.
type retryPolicy struct {
	maxRetries int
	initial    time.Duration
	ceiling    time.Duration
}

func (p retryPolicy) delay(attempt int) time.Duration {
	d := p.initial << attempt
	if p.ceiling > 0 && (d > p.ceiling || d <= 0) {
		return p.ceiling
	}
	return d
}

var (
	errRetryableStatus = errors.New("retryable status")
	errStatus          = errors.New("unexpected status")
	errCircuitOpen     = errors.New("circuit breaker open")
)

// checkStatus sorts a response into success, a status worth retrying (429, 5xx)
// and a final failure.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", errRetryableStatus, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s", errStatus, resp.Status)
	}
	return nil
}

// fetch runs newRequest through the breaker until it succeeds, fails for good or
// the retries run out. The caller closes the returned body.
func fetch(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	policy retryPolicy,
	newRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := newRequest(ctx)
		if err != nil {
			return nil, err
		}

		out, err := cb.Execute(func() (interface{}, error) {
			resp, err := client.Do(req)
			if err != nil {
				return nil, err
			}
			if err := checkStatus(resp); err != nil {
				resp.Body.Close()
				return nil, err
			}
			return resp, nil
		})
		if err == nil {
			return out.(*http.Response), nil
		}

		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		case errors.Is(err, errStatus), ctx.Err() != nil, attempt >= policy.maxRetries:
			return nil, err
		}

		timer := time.NewTimer(policy.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
