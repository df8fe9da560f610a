package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"slidecast/internal/history"
)

func NewHistoryCmd(deps *Dependencies) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := history.Open(deps.Cfg.History.Database)
			if err != nil {
				return err
			}
			defer repo.Close()

			runs, err := repo.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tSTATUS\tSEGMENTS\tDURATION\tDECK\tOUTPUT")
			for _, run := range runs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.1fs\t%s\t%s\n",
					run.ID, run.CreatedAt, run.Status, run.Segments, run.Duration, run.DeckPath, run.OutputPath)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to show")

	return cmd
}
