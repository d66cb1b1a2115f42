package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/brandforge/brandforge/internal/model"
)

// RemoteConfig holds configuration for the hosted catalog endpoint.
type RemoteConfig struct {
	URL          string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// RemoteSource fetches the category catalog from the hosted API. When
// token credentials are configured, requests carry an OAuth2
// client-credentials bearer token.
type RemoteSource struct {
	httpClient *http.Client
	url        string
}

// NewRemoteSource creates a remote catalog source. Returns nil when no
// URL is configured, which callers treat as "bundled only".
func NewRemoteSource(cfg RemoteConfig) *RemoteSource {
	if cfg.URL == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.TokenURL != "" && cfg.ClientID != "" {
		creds := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = creds.Client(context.Background())
		httpClient.Timeout = timeout
	}

	return &RemoteSource{
		url:        cfg.URL,
		httpClient: httpClient,
	}
}

// List fetches all category records from the remote endpoint.
func (s *RemoteSource) List(ctx context.Context) ([]model.CategoryRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Categories []model.CategoryRecord `json:"categories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return payload.Categories, nil
}
