// Package main provides the entry point for the wayfarer CLI application.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/wayfarerhq/wayfarer/agent"
	"github.com/wayfarerhq/wayfarer/backend"
	"github.com/wayfarerhq/wayfarer/speech"
	"github.com/wayfarerhq/wayfarer/speech/espeak"
	"github.com/wayfarerhq/wayfarer/speech/mock"
	"github.com/wayfarerhq/wayfarer/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	style      string
	width      uint
	mouse      bool
	engineName string

	rootCmd = &cobra.Command{
		Use:   "wayfarer [TOUR-ID]",
		Short: "Browse tour itineraries in your terminal, narrated out loud",
		Long: paragraph(
			fmt.Sprintf("\nBrowse and author tour itineraries on the CLI, %s.", keyword("narrated out loud")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	width = viper.GetUint("width")
	mouse = viper.GetBool("mouse")
	style = viper.GetString("style")
	engineName = viper.GetString("speech.engine")

	if engineName != "" && engineName != "espeak" && engineName != "mock" {
		return fmt.Errorf("unknown speech engine %q (use espeak or mock)", engineName)
	}

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	if !isTerminal && !cmd.Flags().Changed("style") {
		style = "notty"
	}

	// Detect terminal width
	if !cmd.Flags().Changed("width") {
		if isTerminal && width == 0 {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err == nil {
				width = uint(w) //nolint:gosec
			}
			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func execute(_ *cobra.Command, args []string) error {
	tourID := ""
	if len(args) == 1 {
		tourID = args[0]
	}
	return runTUI(tourID)
}

// newSpeaker builds the configured speech engine, falling back to the mock
// when the synthesizer binary is not installed.
func newSpeaker(cfg appConfig) (speech.Speaker, error) {
	if engineName == "mock" {
		return mock.NewAuto(300 * time.Millisecond), nil
	}

	sp, err := espeak.New(espeak.Config{
		Binary:   cfg.Speech.Binary,
		CacheDir: cfg.Speech.CacheDir,
		CacheMax: int64(cfg.Speech.CacheMaxMB) * 1024 * 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create speech engine: %w", err)
	}
	if !sp.Available() {
		log.Warn("espeak-ng not found, narration will be silent", "binary", cfg.Speech.Binary)
		return mock.NewAuto(300 * time.Millisecond), nil
	}
	return sp, nil
}

func runTUI(tourID string) error {
	appCfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	// Read environment to get debugging stuff.
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}
	cfg.TourID = tourID
	cfg.GlamourMaxWidth = width
	cfg.EnableMouse = mouse
	cfg.DraftsDir = appCfg.Drafts.Dir
	cfg.ChatSender = appCfg.Chat.Sender
	cfg.ShareBaseURL = appCfg.Share.BaseURL
	if cfg.GlamourStyle == "" {
		cfg.GlamourStyle = style
	}
	if cfg.ShareBaseURL == "" {
		cfg.ShareBaseURL = appCfg.Backend.URL
	}

	client, err := backendClient(appCfg)
	if err != nil {
		return err
	}

	var agentClient *agent.Client
	if appCfg.Agent.URL != "" {
		agentClient, err = agent.New(agent.Config{
			URL:               appCfg.Agent.URL,
			RequestsPerSecond: appCfg.Agent.RequestsPerSecond,
		})
		if err != nil {
			return fmt.Errorf("unable to create agent client: %w", err)
		}
	}

	speaker, err := newSpeaker(appCfg)
	if err != nil {
		return err
	}

	opts := speech.Options{
		Language: appCfg.Speech.Language,
		Pitch:    appCfg.Speech.Pitch,
		Rate:     appCfg.Speech.Rate,
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid speech options: %w", err)
	}

	deps := ui.Deps{
		Backend: client,
		Agent:   agentClient,
		Speaker: speaker,
		Speech:  opts,
	}

	// Run Bubble Tea program
	if _, err := ui.NewProgram(cfg, deps).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func backendClient(cfg appConfig) (*backend.Client, error) {
	client, err := backend.New(backend.Config{
		BaseURL: cfg.Backend.URL,
		APIKey:  cfg.Backend.APIKey,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create backend client: %w", err)
	}
	return client, nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	// Local .env files fill in backend credentials during development.
	_ = godotenv.Load()

	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&style, "style", "s", "auto", "glamour style name or JSON path")
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap at width (set to 0 to disable)")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")
	rootCmd.Flags().StringVar(&engineName, "engine", "", "speech engine (espeak or mock)")

	// Config bindings
	_ = viper.BindPFlag("style", rootCmd.Flags().Lookup("style"))
	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))
	_ = viper.BindPFlag("speech.engine", rootCmd.Flags().Lookup("engine"))

	viper.SetDefault("style", "auto")
	viper.SetDefault("width", 0)
	viper.SetDefault("speech.engine", "espeak")

	rootCmd.AddCommand(configCmd, manCmd, exportCmd, reportCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "wayfarer")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "wayfarer")}, dirs...)
	}

	if c := os.Getenv("WAYFARER_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("wayfarer")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("wayfarer")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "wayfarer.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
