package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/track-report/internal/metrics"
)

const (
	athleticNetSourceName = "athletic.net"
	defaultUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/111.0.0.0 Safari/537.36"
	maxErrorBodyBytes     = 512
)

// AthleticNetConfig configures the athletic.net athlete bio client
type AthleticNetConfig struct {
	BaseURL   string
	Sport     string
	Level     int
	Token     string
	UserAgent string
}

// AthleticNetClient implements DataSource for the athletic.net AthleteBio API
type AthleticNetClient struct {
	httpClient *RateLimitedHTTPClient
	cfg        AthleticNetConfig
	logger     *logrus.Entry
}

// NewAthleticNetClient creates a new athletic.net client
func NewAthleticNetClient(httpClient *RateLimitedHTTPClient, cfg AthleticNetConfig, logger *logrus.Logger) *AthleticNetClient {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AthleticNetClient{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger.WithField("component", "athletic_net"),
	}
}

// Name returns the name of the data source
func (c *AthleticNetClient) Name() string {
	return athleticNetSourceName
}

// CircuitOpen reports whether the underlying HTTP client has tripped its breaker
func (c *AthleticNetClient) CircuitOpen() bool {
	return c.httpClient.IsOpen()
}

// FetchAthlete downloads the bio document for one athlete
func (c *AthleticNetClient) FetchAthlete(ctx context.Context, athleteID string) ([]byte, error) {
	endpoint, err := c.athleteURL(athleteID)
	if err != nil {
		return nil, NewDataSourceError(athleticNetSourceName, ErrCodeInvalidData, "invalid base url", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(athleticNetSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(ctx, req)
	metrics.RecordFetchDuration(time.Since(start).Seconds())
	if err != nil {
		return nil, NewDataSourceError(athleticNetSourceName, ErrCodeNetworkError, "failed to fetch athlete "+athleteID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, NewDataSourceError(athleticNetSourceName, ErrCodeAuthenticationFailed, "request rejected", nil)
	case http.StatusNotFound:
		return nil, NewDataSourceError(athleticNetSourceName, ErrCodeNotFound, "no athlete with id "+athleteID, nil)
	case http.StatusTooManyRequests:
		return nil, NewDataSourceError(athleticNetSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, NewDataSourceError(athleticNetSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewDataSourceError(athleticNetSourceName, ErrCodeNetworkError, "failed to read response", err)
	}

	c.logger.WithFields(logrus.Fields{
		"athlete_id": athleteID,
		"bytes":      len(body),
	}).Debug("Downloaded athlete document")

	return body, nil
}

func (c *AthleticNetClient) athleteURL(athleteID string) (string, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("athleteId", athleteID)
	q.Set("sport", c.cfg.Sport)
	q.Set("level", strconv.Itoa(c.cfg.Level))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *AthleticNetClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json,text/html;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
}
