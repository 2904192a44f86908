package cmd

import (
	"fmt"

	"github.com/coderFeedForwardAlg/web-term/internal"
	"github.com/coderFeedForwardAlg/web-term/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [name...]",
	Short: "Export chats to file",
	Long: `Export chat transcripts to various formats (jsonl, md, yaml, json).

Each chat is written to chat_<name>.<ext> in the output directory. Without a name,
every chat is exported. Use 'web-term list' to see available chats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		l, err := openLedger()
		if err != nil {
			return err
		}

		names := args
		if len(names) == 0 {
			names = l.ListChats()
		}
		if len(names) == 0 {
			internal.PrintInfo(cmd.OutOrStdout(), "No chats found.")
			return nil
		}

		// resolve everything first so a typo does not leave a partial export
		sessions := make([]*internal.Session, 0, len(names))
		for _, name := range names {
			session, err := l.Session(name)
			if err != nil {
				return err
			}
			sessions = append(sessions, session)
		}

		for _, session := range sessions {
			path, err := export.ToFile(session, outputDir, exporter)
			if err != nil {
				return err
			}
			internal.LogDebug("Exported %q (%d exchanges) to %s", session.Name, session.Metadata.ExchangeCount, path)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
		}

		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Exported %d chat(s) to %s", len(sessions), outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "md", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
}
