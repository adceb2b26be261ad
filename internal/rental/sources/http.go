package sources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// HTTPSource downloads the dataset CSV from a URL.
type HTTPSource struct {
	url     string
	policy  rental.LoadPolicy
	client  *http.Client
	retry   retryPolicy
	circuit *gobreaker.CircuitBreaker
}

func NewHTTPSource(client *http.Client, url string, policy rental.LoadPolicy) *HTTPSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dataset-http",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPSource{
		url:    url,
		policy: policy,
		client: client,
		retry: retryPolicy{
			maxRetries: 3,
			initial:    500 * time.Millisecond,
			ceiling:    5 * time.Second,
		},
		circuit: cb,
	}
}

func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

func (s *HTTPSource) Load(ctx context.Context) ([]rental.Record, error) {
	if s.url == "" {
		return nil, fmt.Errorf("dataset url is not configured")
	}
	if s.client == nil {
		return nil, fmt.Errorf("http client is not configured")
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")
		return req, nil
	}

	resp, err := fetch(ctx, s.client, s.circuit, s.retry, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	return ReadCSV(resp.Body, s.policy)
}
