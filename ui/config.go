package ui

// Config contains TUI-specific configuration.
type Config struct {
	HomeDir      string `env:"HOME"`
	GlamourStyle string `env:"GLAMOUR_STYLE"`

	GlamourMaxWidth uint
	EnableMouse     bool

	// Tour to open directly, skipping the tour list.
	TourID string

	// Directory holding local markdown drafts for stop descriptions.
	DraftsDir string

	// Username shown as the chat sender.
	ChatSender string

	// Base URL used to build shareable tour links.
	ShareBaseURL string

	// For debugging the UI
	GlamourEnabled bool `env:"WAYFARER_ENABLE_GLAMOUR" envDefault:"true"`
}
