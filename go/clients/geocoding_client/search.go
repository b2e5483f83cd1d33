package geocoding_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mcdev12/kickoff/go/clients"
)

// Place is one search hit. Nominatim sends lat/lon as strings.
type Place struct {
	Lat         clients.FlexFloat `json:"lat"`
	Lon         clients.FlexFloat `json:"lon"`
	DisplayName string            `json:"display_name"`
}

// Search runs a free-text query and returns at most one place
func (c *GeocodingClient) Search(ctx context.Context, q string) ([]Place, error) {
	query := url.Values{}
	query.Set(QueryParam, q)
	query.Set(FormatParam, FormatJSON)
	query.Set(LimitParam, DefaultLimit)

	body, err := c.Get(ctx, SearchEndpoint, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return places, nil
}
