// Package client holds the thin RPC clients for the external search
// providers and keeps all provider-native wire formats out of the adapters.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/neuraseek/neuraseek/internal/search/types"
)

// Config holds the settings shared by every provider client.
type Config struct {
	APIHost string `mapstructure:"api_host"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// BaseClient provides the HTTP plumbing common to all provider clients.
type BaseClient struct {
	config     *Config
	httpClient *http.Client
}

// NewBaseClient creates a client with a per-call timeout so one slow
// provider cannot stall the whole aggregated response.
func NewBaseClient(config *Config) *BaseClient {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &BaseClient{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// APIHost returns the configured provider host.
func (b *BaseClient) APIHost() string {
	return b.config.APIHost
}

// APIKey returns the configured API key.
func (b *BaseClient) APIKey() string {
	return b.config.APIKey
}

// GetBody issues a GET and returns the raw response body. Non-2xx statuses
// are reported as a ProviderError carrying the status code.
func (b *BaseClient) GetBody(ctx context.Context, provider, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "neuraseek/1.0")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: provider,
			Code:     "REQUEST_FAILED",
			Message:  "failed to execute request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: provider,
			Code:     "READ_FAILED",
			Message:  "failed to read response body",
			Err:      err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &types.ProviderError{
			Provider: provider,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  string(body),
		}
	}

	return body, nil
}
