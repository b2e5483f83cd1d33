package football_api_client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/kickoff/go/clients"
)

// Config holds the upstream provider settings
type Config struct {
	BaseURL     string
	APIKey      string
	UseRapidAPI bool
	Timeout     time.Duration
}

type FootballApiClient struct {
	*clients.BaseClient
}

// NewFootballApiClient creates a client whose every call waits on limiter
func NewFootballApiClient(cfg Config, limiter clients.Waiter) *FootballApiClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}

	client := &FootballApiClient{
		BaseClient: clients.NewBaseClient(string(clients.ExternalSourceAPIFootball), baseURL),
	}

	if cfg.UseRapidAPI {
		client.SetHeader(RapidAPIKeyHeader, cfg.APIKey)
		client.SetHeader(RapidAPIHostHeader, RapidAPIHost)
	} else {
		client.SetHeader(APISportsKeyHeader, cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if limiter != nil {
		client.SetRateLimiter(limiter)
	}

	return client
}

// Paging is the pagination block of every api-sports response
type Paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type response[T any] struct {
	Get        string                 `json:"get"`
	Parameters map[string]interface{} `json:"parameters"`
	Errors     json.RawMessage        `json:"errors"`
	Results    int                    `json:"results"`
	Paging     Paging                 `json:"paging"`
	Response   []T                    `json:"response"`
}

// decodeResponse unmarshals an api-sports envelope. The provider reports
// failures with HTTP 200 and a non-empty "errors" array or object.
func decodeResponse[T any](body []byte) ([]T, Paging, error) {
	var resp response[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, Paging{}, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	if apiErr := providerErrors(resp.Errors); apiErr != nil {
		return nil, resp.Paging, apiErr
	}

	return resp.Response, resp.Paging, nil
}

func providerErrors(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}

	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			return fmt.Errorf("API returned errors: %v", list)
		}
		return nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if len(obj) > 0 {
			return fmt.Errorf("API returned errors: %v", obj)
		}
		return nil
	}

	return nil
}
