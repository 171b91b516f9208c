package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the commands freshen has run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := c.app.History(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, "no commands recorded")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "STARTED\tSTATUS\tDURATION\tSTEP")
			for _, rec := range records {
				status := "ok"
				if !rec.Succeeded {
					status = fmt.Sprintf("exit %d", rec.ExitCode)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					rec.StartedAt.Local().Format(time.DateTime),
					status,
					rec.Duration.Round(time.Millisecond),
					rec.Name,
				)
			}
			return w.Flush()
		},
	}
}
