package constants

// Server is the base address of an OpenSubtitles REST API deployment.
type Server string

const (
	// Primary is the standard base URL for the OpenSubtitles REST API.
	Primary Server = "https://api.opensubtitles.com/api/v1"
	// VIP is the base URL handed out to VIP accounts on login.
	VIP Server = "https://vip-api.opensubtitles.com/api/v1"
)

// DefaultBaseURL is kept as a plain string for callers that only deal in URLs.
const DefaultBaseURL = string(Primary)

// ApiPath is the common path prefix for API endpoints.
const ApiPath = "/api/v1"

// HeaderAPIKey carries the consumer API key on every keyed request.
const HeaderAPIKey = "Api-Key"

// DefaultUserAgent is sent by the CLI when none is configured.
const DefaultUserAgent = "osclient v0.1"

// String returns the base URL.
func (s Server) String() string { return string(s) }

// ServerByName resolves a configured server name ("primary", "vip") or a full URL.
func ServerByName(name string) Server {
	switch name {
	case "", "primary":
		return Primary
	case "vip":
		return VIP
	default:
		return Server(name)
	}
}
