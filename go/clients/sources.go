package clients

// ExternalSource represents different external data providers
type ExternalSource string

const (
	// ExternalSourceAPIFootball represents the api-sports football v3 API
	ExternalSourceAPIFootball ExternalSource = "api-football"

	// ExternalSourceNominatim represents the Nominatim-compatible geocoder
	ExternalSourceNominatim ExternalSource = "nominatim"
)
