package geocoding_client

const (
	// Base URL - any Nominatim compatible search API (OSM, LocationIQ, self-hosted)
	BaseURL = "https://nominatim.openstreetmap.org"

	// Paths
	SearchEndpoint = "/search"

	// Query parameters - the API key is passed as a query parameter, not a header
	APIKeyParam  = "key"
	QueryParam   = "q"
	FormatParam  = "format"
	LimitParam   = "limit"
	FormatJSON   = "json"
	DefaultLimit = "1"

	// Headers
	UserAgentHeader = "User-Agent"
	UserAgent       = "kickoff-onboarding/1.0"
	JsonHeader      = "accept"
	JsonContentType = "application/json"
)
