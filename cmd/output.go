package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/clock"
	"github.com/skillpulse/skillpulse/internal/ui/theme"
)

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, theme.Title.Render(title))
	fmt.Fprintln(w, theme.Rule.Render(strings.Repeat("─", 60)))
}

func formatTime(ts clock.Timestamp) string {
	if ts.IsZero() {
		return "never"
	}
	return ts.Time().Local().Format("2006-01-02 15:04")
}
