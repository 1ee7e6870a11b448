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
	"io"
	"strconv"

	"github.com/eslsoft/phraser/internal/app"
	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/internal/repository"
	"github.com/eslsoft/phraser/pkg/weighted"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	listFilterKey  = "list.filter"
	listOrderByKey = "list.order_by"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored phrases",
	Example: `  phraser list
  phraser list --filter "incorrect > correct" --order-by "weight desc"
  phraser list --filter "source.startsWith('你')"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := &repository.ListItemQuery{FilterOrder: repository.FilterOrder{
			Filter:  viper.GetString(listFilterKey),
			OrderBy: viper.GetString(listOrderByKey),
		}}
		return withContainer(func(c *app.Container) error {
			items, err := c.Items.Find(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				cmd.Println("No phrases found.")
				return nil
			}
			renderItems(cmd.OutOrStdout(), items)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("filter", "", "CEL filter over source, target, hint, correct, incorrect, attempts, success_rate, weight")
	listCmd.Flags().String("order-by", "", "ordering, e.g. \"weight desc\" or \"source, created desc\"")

	bindFlagToViper(listFilterKey, listCmd.Flags().Lookup("filter"))
	bindFlagToViper(listOrderByKey, listCmd.Flags().Lookup("order-by"))
}

func renderItems(w io.Writer, items []entity.Item) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Source", "Target", "Hint", "Correct", "Incorrect", "Weight"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, it := range items {
		st := it.Stats()
		table.Append([]string{
			it.ID,
			it.SourceText,
			it.TargetText,
			it.PhoneticHint,
			strconv.Itoa(st.Correct),
			strconv.Itoa(st.Incorrect),
			fmt.Sprintf("%.2f", weighted.Weight(st)),
		})
	}
	table.Render()
}
