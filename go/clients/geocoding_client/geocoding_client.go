package geocoding_client

import (
	"context"
	"net/url"
	"time"

	"github.com/mcdev12/kickoff/go/clients"
)

type GeocodingClient struct {
	*clients.BaseClient
	apiKey string
}

func NewGeocodingClient(baseURL, apiKey string, timeout time.Duration) *GeocodingClient {
	if baseURL == "" {
		baseURL = BaseURL
	}

	client := &GeocodingClient{
		BaseClient: clients.NewBaseClient(string(clients.ExternalSourceNominatim), baseURL),
		apiKey:     apiKey,
	}

	client.SetHeader(JsonHeader, JsonContentType)
	client.SetHeader(UserAgentHeader, UserAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return client
}

// HasAPIKey reports whether a credential was configured
func (c *GeocodingClient) HasAPIKey() bool {
	return c.apiKey != ""
}

// Get overrides the base Get method to add the API key query parameter
func (c *GeocodingClient) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	withKey := url.Values{}
	for k, v := range query {
		withKey[k] = v
	}
	if c.apiKey != "" {
		withKey.Set(APIKeyParam, c.apiKey)
	}

	return c.BaseClient.Get(ctx, endpoint, withKey)
}
