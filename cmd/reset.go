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
	"errors"

	"github.com/eslsoft/phraser/internal/app"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every phrase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		allData, _ := cmd.Flags().GetBool("all-data")
		if !yes {
			return errors.New("this deletes every phrase and its statistics; rerun with --yes to confirm")
		}
		return withContainer(func(c *app.Container) error {
			ctx := cmd.Context()
			n := len(c.Items.List(ctx))
			if n > 0 {
				c.Items.ResetAll(ctx)
			}
			if allData {
				c.Settings.Clear(ctx)
				cmd.Printf("Deleted %d phrases and restored default settings.\n", n)
				return nil
			}
			if n == 0 {
				cmd.Println("Nothing to reset.")
				return nil
			}
			cmd.Printf("Deleted %d phrases.\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().Bool("yes", false, "confirm deletion")
	resetCmd.Flags().Bool("all-data", false, "also remove stored settings")
}
