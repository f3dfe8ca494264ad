package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/track-report/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// AthleticNetSourceType downloads missing documents from athletic.net
	AthleticNetSourceType SourceType = "athletic_net"
	// OfflineSourceType serves cached documents only
	OfflineSourceType SourceType = "offline"
)

// Factory creates cached sources from configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// Create builds a cached source of the given type
func (f *Factory) Create(sourceType SourceType) (*CachedSource, error) {
	if f.config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	disk := NewFileCache(f.config.Cache.Dir)

	switch sourceType {
	case AthleticNetSourceType:
		client := NewAthleticNetClient(f.NewHTTPClient(), AthleticNetConfig{
			BaseURL:   f.config.Athletic.BaseURL,
			Sport:     f.config.Athletic.Sport,
			Level:     f.config.Athletic.Level,
			Token:     f.config.Athletic.Token,
			UserAgent: f.config.Athletic.UserAgent,
		}, f.logger)
		return NewCachedSource(client, disk, f.config.MemoryTTL(), f.logger), nil
	case OfflineSourceType:
		return NewCachedSource(nil, disk, f.config.MemoryTTL(), f.logger), nil
	default:
		return nil, fmt.Errorf("unknown data source type: %s", sourceType)
	}
}

// NewHTTPClient builds the rate limited client from the athletic config
func (f *Factory) NewHTTPClient() *RateLimitedHTTPClient {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = f.config.RequestTimeout()
	httpCfg.MaxRetries = f.config.Athletic.RetryAttempts
	httpCfg.RateLimit = f.config.Athletic.RateLimit
	return NewRateLimitedHTTPClient(httpCfg, f.logger)
}

// ListAvailableSources returns the supported source types
func (f *Factory) ListAvailableSources() []SourceType {
	return []SourceType{AthleticNetSourceType, OfflineSourceType}
}
