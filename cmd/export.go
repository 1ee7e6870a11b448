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
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/eslsoft/phraser/internal/app"
	"github.com/eslsoft/phraser/internal/usecase/backup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const exportOutputKey = "export.output"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all phrases as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := viper.GetString(exportOutputKey)
		if outputPath == "" {
			outputPath = defaultExportFilename(time.Now())
		}

		return withContainer(func(c *app.Container) error {
			var buf bytes.Buffer
			n, err := c.Backup.ExportCSV(cmd.Context(), &buf)
			if errors.Is(err, backup.ErrNothingToExport) {
				return errors.New("no phrases to export")
			}
			if err != nil {
				return fmt.Errorf("export csv: %w", err)
			}

			writer, closeFn, err := openOutput(cmd, outputPath, false)
			if err != nil {
				return err
			}
			if _, err := writer.Write(buf.Bytes()); err != nil {
				_ = closeFn()
				return fmt.Errorf("write csv: %w", err)
			}
			if err := closeFn(); err != nil {
				return err
			}

			if outputPath != "-" {
				cmd.Printf("Exported %d phrases to %s\n", n, outputPath)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "CSV output file, - for stdout (default phraser-translations-YYYY-MM-DD.csv)")

	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
}

func defaultExportFilename(now time.Time) string {
	return fmt.Sprintf("phraser-translations-%s.csv", now.UTC().Format("2006-01-02"))
}
