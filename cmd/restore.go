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
	"fmt"

	"github.com/eslsoft/phraser/internal/app"
	"github.com/eslsoft/phraser/internal/usecase/backup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	restoreInputKey = "backup.import.input"
	restoreGzipKey  = "backup.import.gzip"
	restoreKindsKey = "backup.import.kinds"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace phrases and settings with the contents of a backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inputPath := viper.GetString(restoreInputKey)
		gzipEnabled := viper.GetBool(restoreGzipKey)
		kinds := kindsFromConfig(restoreKindsKey)
		if inputPath == "" {
			return errors.New("specify a backup file with --input, or - for stdin")
		}

		reader, closeFn, err := openInput(cmd, inputPath, gzipEnabled)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeFn(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		return withContainer(func(c *app.Container) error {
			var opts []backup.ImportOption
			if len(kinds) > 0 {
				opts = append(opts, backup.WithImportKinds(kinds))
			}
			stats, err := c.Backup.Import(cmd.Context(), reader, opts...)
			if err != nil {
				return fmt.Errorf("restore backup: %w", err)
			}
			cmd.Printf("Restored %d phrases", stats.Items)
			if stats.DroppedItems > 0 {
				cmd.Printf(" (%d invalid or duplicate records dropped)", stats.DroppedItems)
			}
			if stats.SettingsApplied {
				cmd.Print(" and settings")
			}
			cmd.Println()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().StringP("input", "i", "", "backup file, - for stdin")
	restoreCmd.Flags().Bool("gzip", false, "input is gzip-compressed")
	restoreCmd.Flags().StringSlice("kinds", nil, "only restore these record kinds (items, settings)")

	bindFlagToViper(restoreInputKey, restoreCmd.Flags().Lookup("input"))
	bindFlagToViper(restoreGzipKey, restoreCmd.Flags().Lookup("gzip"))
	bindFlagToViper(restoreKindsKey, restoreCmd.Flags().Lookup("kinds"))
}
