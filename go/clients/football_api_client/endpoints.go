package football_api_client

const (
	// Base URL
	BaseURL = "https://v3.football.api-sports.io"

	// API Endpoints
	TeamsEndpoint   = "/teams"
	LeaguesEndpoint = "/leagues"

	// Query parameters
	LeagueParam = "league"
	SeasonParam = "season"

	// Headers
	APISportsKeyHeader = "x-apisports-key"
	RapidAPIKeyHeader  = "X-RapidAPI-Key"
	RapidAPIHostHeader = "X-RapidAPI-Host"
	RapidAPIHost       = "v3.football.api-sports.io"

	// League types reported by /leagues
	LeagueTypeLeague = "League"
	LeagueTypeCup    = "Cup"
)
