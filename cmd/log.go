package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/cipherlab/internal/audit"
	"github.com/PolarWolf314/cipherlab/internal/ui"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (comma-separated)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log written by the server and the CLI.

Identities are recorded as fingerprints, never in the clear.

Examples:
  cipherlab log                                    # Full log
  cipherlab log -n 10                              # Last 10 entries
  cipherlab log --reverse                          # Most recent first
  cipherlab log --operation check_password         # Filter by operation
  cipherlab log --json                             # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if settings.Audit.Path == "" {
			fmt.Fprintln(out, ui.Info.Sprint("ℹ")+" Audit logging is disabled")
			fmt.Fprintln(out, ui.Hint("Set "+ui.Code.Sprint("[audit] path")+" in "+ui.Path.Sprint(configPath)+" to enable it"))
			return nil
		}

		entries, err := audit.ReadEntries(settings.Audit.Path)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %v", err)
		}
		total := len(entries)
		entries = filterEntries(entries, logOperation, logLimit, logReverse)
		Logger.Debugf("Showing %d of %d entries", len(entries), total)

		if len(entries) == 0 {
			if total == 0 {
				fmt.Fprintln(out, "No audit log entries found.")
			} else {
				fmt.Fprintln(out, "No audit log entries found matching the filters.")
			}
			return nil
		}

		if logJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal entries to JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		writeLogTable(out, entries)
		return nil
	},
}

// filterEntries keeps entries whose operation is listed in ops (all when
// empty), keeps the last limit of them, and optionally reverses the order.
func filterEntries(entries []audit.Entry, ops string, limit int, reverse bool) []audit.Entry {
	wanted := map[string]bool{}
	for _, op := range strings.Split(ops, ",") {
		if op = strings.TrimSpace(op); op != "" {
			wanted[op] = true
		}
	}

	filtered := make([]audit.Entry, 0, len(entries))
	for _, e := range entries {
		if len(wanted) == 0 || wanted[e.Operation] {
			filtered = append(filtered, e)
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}

	if reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}
	return filtered
}

func writeLogTable(out io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(out, "%-19s  %-12s  %-14s  %s\n", formatTimestamp(e.Timestamp), e.IdentityFP, e.Operation, entryDetails(e))
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func entryDetails(e audit.Entry) string {
	switch {
	case e.Error != "":
		return "error: " + e.Error
	case e.Matched != nil && *e.Matched:
		return "matched"
	case e.Matched != nil:
		return "missed"
	case e.ArtifactID != "":
		return "artifact " + e.ArtifactID
	default:
		return ""
	}
}
