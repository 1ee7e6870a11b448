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
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE|-",
	Short: "Import phrases from CSV (source,target per line)",
	Long: `Import phrases from comma-separated text, one "source,target" pair per
line. A leading header row is skipped, quoted fields are supported, and
columns after the second are joined back into the target text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		reader, closeFn, err := openInput(cmd, args[0], false)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeFn(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		return withContainer(func(c *app.Container) error {
			res, err := c.Backup.ImportCSV(cmd.Context(), reader)
			if err != nil {
				return fmt.Errorf("import csv: %w", err)
			}
			cmd.Printf("Imported %d phrases", len(res.Created))
			if res.Skipped > 0 {
				cmd.Printf(" (%d rows skipped)", res.Skipped)
			}
			cmd.Println()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
