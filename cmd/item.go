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

	"github.com/eslsoft/phraser/internal/app"
	"github.com/eslsoft/phraser/pkg/weighted"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one phrase with its review statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			item, ok := c.Items.Get(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("phrase %q not found", args[0])
			}
			st := item.Stats()
			cmd.Printf("ID:           %s\n", item.ID)
			cmd.Printf("Source:       %s\n", item.SourceText)
			cmd.Printf("Target:       %s\n", item.TargetText)
			cmd.Printf("Hint:         %s\n", item.PhoneticHint)
			cmd.Printf("Correct:      %d\n", st.Correct)
			cmd.Printf("Incorrect:    %d\n", st.Incorrect)
			cmd.Printf("Success rate: %.0f%%\n", weighted.SuccessRate(st)*100)
			cmd.Printf("Weight:       %.2f\n", weighted.Weight(st))
			return nil
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit ID SOURCE TARGET",
	Short: "Replace the texts of a phrase, keeping its statistics",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			ok, err := c.Items.Update(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("phrase %q not found", args[0])
			}
			cmd.Printf("Updated %s\n", args[0])
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a phrase",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			if !c.Items.Delete(cmd.Context(), args[0]) {
				return fmt.Errorf("phrase %q not found", args[0])
			}
			cmd.Printf("Deleted %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd, editCmd, deleteCmd)
}
