package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/coderFeedForwardAlg/web-term/internal/ledger"
	"github.com/coderFeedForwardAlg/web-term/internal/protocol"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that web-term can read its chats and reach its configuration",
	Long: `Check the health of web-term by verifying:
  • Storage directory resolution
  • Chat index backend
  • Chat index readability
  • Transcript files
  • Endpoint configuration

No request is sent to the endpoint.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		say := func(a ...interface{}) { _, _ = fmt.Fprintln(out, a...) }

		say(sectionStyle.Render("web-term health check"))
		say()

		// Step 1: storage directory
		say(infoStyle.Render("Step 1: Resolving storage directory..."))
		info, err := os.Stat(cfg.StorageDir)
		switch {
		case err == nil && info.IsDir():
			say(successStyle.Render("✅ Storage directory exists"))
		case os.IsNotExist(err):
			say(warningStyle.Render("⚠️  Storage directory does not exist yet (created on first chat)"))
		default:
			say(errorStyle.Render("❌ Storage directory is not usable:"), err)
			return fmt.Errorf("storage directory %s is not usable: %w", cfg.StorageDir, err)
		}
		if healthcheckVerbose {
			say("   Directory:", cfg.StorageDir)
		}
		say()

		// Step 2: backend
		say(infoStyle.Render("Step 2: Checking chat index backend..."))
		backend, err := ledger.ParseBackend(cfg.Backend)
		if err != nil {
			say(errorStyle.Render("❌ Unsupported backend:"), err)
			return err
		}
		say(successStyle.Render(fmt.Sprintf("✅ Backend: %s", backend)))
		say()

		// Step 3: load the chat index
		say(infoStyle.Render("Step 3: Loading chat index..."))
		l, err := ledger.Load(cfg.StorageDir, ledger.WithBackend(backend))
		if err != nil {
			say(errorStyle.Render("❌ Failed to load chat index"))
			say()
			say("Error details:")
			say(err)
			return err
		}
		names := l.ListChats()
		if len(names) > 0 {
			say(successStyle.Render(fmt.Sprintf("✅ Found %d chat(s)", len(names))))
		} else {
			say(warningStyle.Render("⚠️  No chats found"))
		}
		if healthcheckVerbose {
			say("   Index:", l.SnapshotPath())
		}
		say()

		// Step 4: transcripts
		say(infoStyle.Render("Step 4: Checking transcripts..."))
		missing := 0
		for i, name := range names {
			path, err := l.TranscriptPath(name)
			if err != nil {
				say(warningStyle.Render("⚠️  "+name+":"), err)
				missing++
				continue
			}
			if _, err := os.Stat(path); err != nil {
				missing++
				if healthcheckVerbose {
					say("   Missing:", path)
				}
			} else if healthcheckVerbose && i < 5 {
				say(fmt.Sprintf("   [%d] %s", i+1, path))
			}
		}
		if missing == 0 {
			say(successStyle.Render("✅ All transcripts present"))
		} else {
			say(warningStyle.Render(fmt.Sprintf("⚠️  %d chat(s) without a transcript", missing)))
		}
		say()

		// Step 5: endpoint
		say(infoStyle.Render("Step 5: Checking endpoint configuration..."))
		endpointOK := false
		if err := cfg.RequireEndpoint(); err != nil {
			say(warningStyle.Render("⚠️  No endpoint configured"))
		} else if _, err := protocol.NewClient(cfg.BaseURL, protocol.WithSessionHeader(cfg.SessionHeader)); err != nil {
			say(errorStyle.Render("❌ Invalid endpoint:"), err)
		} else {
			endpointOK = true
			say(successStyle.Render("✅ Endpoint configured"))
			if healthcheckVerbose {
				say("   Base URL:", cfg.BaseURL)
				say("   Session header:", cfg.SessionHeader)
			}
		}
		say()

		// Summary
		say(sectionStyle.Render("Summary"))
		say()
		say(fmt.Sprintf("Chats: %d", len(names)))
		if endpointOK {
			say(successStyle.Render("✅ web-term is ready to chat"))
		} else {
			say(warningStyle.Render("⚠️  web-term can read chats but cannot start or continue them"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show detailed diagnostic information")
}
