/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/sentnet/internal/app"
	"github.com/eslsoft/sentnet/internal/usecase"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List scored attempts from the local history log",
	Long: `List scored attempts from the local history log.

The --filter flag takes a CEL expression over word, sentence, score,
difficulty and submitted_at, for example:

  sentnet history --filter 'score >= 8.0 && difficulty == "advanced"'
  sentnet history --filter 'word.startsWith("e")' --order-by "score desc"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")
		orderBy, _ := cmd.Flags().GetString("order-by")
		limit, _ := cmd.Flags().GetInt("limit")

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		entries, err := container.History.List(cmd.Context(), usecase.ListHistoryQuery{
			Filter:  filter,
			OrderBy: orderBy,
			Limit:   limit,
		})
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			cmd.Println("no history entries")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tWORD\tSCORE\tDIFFICULTY\tSENTENCE")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\n",
				e.Timestamp.Local().Format(time.DateTime),
				e.Word,
				e.Score,
				e.Difficulty.Code(),
				e.Sentence,
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().String("filter", "", "CEL filter expression")
	historyCmd.Flags().String("order-by", "", `sort order, e.g. "score desc" (default "submitted_at desc")`)
	historyCmd.Flags().Int("limit", 0, "maximum entries to print (0 = all)")
}
