package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/coderFeedForwardAlg/web-term/internal"
	"github.com/coderFeedForwardAlg/web-term/internal/ledger"
	"github.com/coderFeedForwardAlg/web-term/internal/protocol"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	v   = viper.New()
	cfg *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "web-term",
	Short: "Hold named conversations with a remote AI endpoint",
	Long: `web-term keeps named, persistent conversations with a remote conversational-AI
endpoint. Every chat name maps to a server-side session, and every exchange is
appended to a plain-text transcript next to the chat index.

Quick Start:
  web-term new trip "Plan a weekend in Kyoto"   # Start a chat
  web-term continue trip "Make it cheaper"      # Send one more message
  web-term continue trip                        # Chat interactively
  web-term list                                 # List chats
  web-term show trip                            # Print the transcript`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := readConfigFile(); err != nil {
			return err
		}
		loaded, err := internal.LoadConfig(v)
		if err != nil {
			return err
		}
		if err := internal.InitLogger(loaded.Log); err != nil {
			return err
		}
		internal.SetVerbose(loaded.Verbose)
		cfg = loaded
		internal.LogDebug("Using storage %s (backend %s)", cfg.StorageDir, cfg.Backend)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func readConfigFile() error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range internal.ConfigSearchPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	internal.LogDebug("Loaded config file %s", v.ConfigFileUsed())
	return nil
}

// openLedger loads the chat index for the configured storage directory
func openLedger() (*ledger.Ledger, error) {
	backend, err := ledger.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return ledger.Load(cfg.StorageDir, ledger.WithBackend(backend))
}

// newClient builds the endpoint client; it fails when no base URL is set
func newClient() (*protocol.Client, error) {
	if err := cfg.RequireEndpoint(); err != nil {
		return nil, err
	}
	return protocol.NewClient(cfg.BaseURL, protocol.WithSessionHeader(cfg.SessionHeader))
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: config.yaml in ., ~/.web-term or the user config dir)")
	flags.String("base-url", "", "Base URL of the conversational endpoint")
	flags.String("session-header", internal.DefaultSessionHeader, "Response header carrying the session id")
	flags.String("storage", "", "Directory holding the chat index and transcripts (default: current directory)")
	flags.String("backend", internal.DefaultBackend, "Chat index backend (json, sqlite, bolt)")
	flags.String("exit-token", internal.DefaultExitToken, "Input line that ends an interactive chat")
	flags.Bool("render", true, "Render replies as markdown when stdout is a terminal")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.String("log-file", "", "Also write logs to this file (rotated)")
	flags.Bool("with-caller", false, "Include caller in log lines")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")

	internal.SetDefaults(v)
	v.SetEnvPrefix(internal.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
