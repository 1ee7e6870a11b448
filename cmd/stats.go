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
	"strconv"

	"github.com/eslsoft/phraser/internal/app"
	"github.com/eslsoft/phraser/internal/repository"
	"github.com/eslsoft/phraser/pkg/weighted"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how likely each phrase is to be drawn next",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			items, err := c.Items.Find(cmd.Context(), &repository.ListItemQuery{
				FilterOrder: repository.FilterOrder{OrderBy: "weight desc"},
			})
			if err != nil {
				return err
			}
			if len(items) == 0 {
				cmd.Println("No phrases yet.")
				return nil
			}

			weights := c.Review.Weights(items)
			total := lo.Sum(weights)
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Source", "Target", "Attempts", "Success", "Weight", "Chance"})
			table.SetAutoWrapText(false)
			table.SetBorder(false)
			for i, it := range items {
				st := it.Stats()
				success := "-"
				if st.Attempts() > 0 {
					success = fmt.Sprintf("%.0f%%", weighted.SuccessRate(st)*100)
				}
				table.Append([]string{
					it.SourceText,
					it.TargetText,
					strconv.Itoa(st.Attempts()),
					success,
					fmt.Sprintf("%.2f", weights[i]),
					fmt.Sprintf("%.1f%%", weights[i]/total*100),
				})
			}
			table.Render()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
