package domain

// Constants
const (
	DefaultPort    = "8080"
	DefaultRootDir = "Sources/GUI/Resources"

	WebPrefix = "/web/"
	ApiPrefix = "/api/"

	// EntryPage is the page announced in the startup banner.
	EntryPage = "index-notion.html"

	// BackendCommand is how users start the real API backend.
	BackendCommand = "swift run alfred"
)

// BackendUnavailableBody is the fixed reply to every POST under ApiPrefix.
// Existing clients match on these exact bytes, separators included.
const BackendUnavailableBody = `{"error": "Swift backend not running. Use CLI instead: ` + BackendCommand + `"}`

// ErrorResponse is the shape of BackendUnavailableBody.
type ErrorResponse struct {
	Error string `json:"error"`
}
