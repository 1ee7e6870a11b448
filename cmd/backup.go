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
	"time"

	"github.com/eslsoft/phraser/internal/app"
	"github.com/eslsoft/phraser/internal/usecase/backup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	backupOutputKey = "backup.export.output"
	backupGzipKey   = "backup.export.gzip"
	backupKindsKey  = "backup.export.kinds"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a full NDJSON backup of phrases, statistics and settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		outputPath := viper.GetString(backupOutputKey)
		gzipEnabled := viper.GetBool(backupGzipKey)
		kinds := kindsFromConfig(backupKindsKey)
		if outputPath == "" {
			outputPath = defaultBackupFilename(time.Now(), gzipEnabled)
		}

		return withContainer(func(c *app.Container) (err error) {
			writer, closeFn, err := openOutput(cmd, outputPath, gzipEnabled)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeFn(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			opts := []backup.ExportOption{backup.WithProgressReporter(newCLIProgress(cmd.ErrOrStderr()))}
			if len(kinds) > 0 {
				opts = append(opts, backup.WithKinds(kinds))
			}
			if err := c.Backup.Export(cmd.Context(), writer, opts...); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}

			if outputPath == "-" {
				cmd.PrintErrln("Backup written to stdout")
			} else {
				cmd.Printf("Backup written to %s\n", outputPath)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().StringP("output", "o", "", "backup file, - for stdout")
	backupCmd.Flags().Bool("gzip", false, "gzip-compress the backup")
	backupCmd.Flags().StringSlice("kinds", nil, "only back up these record kinds (items, settings)")

	bindFlagToViper(backupOutputKey, backupCmd.Flags().Lookup("output"))
	bindFlagToViper(backupGzipKey, backupCmd.Flags().Lookup("gzip"))
	bindFlagToViper(backupKindsKey, backupCmd.Flags().Lookup("kinds"))
}

func defaultBackupFilename(now time.Time, gzipEnabled bool) string {
	ts := now.UTC().Format("20060102-150405")
	filename := fmt.Sprintf("phraser-backup-%s.jsonl", ts)
	if gzipEnabled {
		filename += ".gz"
	}
	return filename
}

type cliProgress struct {
	out         io.Writer
	totals      map[string]int
	counts      map[string]int
	lastPrinted map[string]int
	steps       map[string]int
}

func newCLIProgress(out io.Writer) *cliProgress {
	return &cliProgress{
		out:         out,
		totals:      make(map[string]int),
		counts:      make(map[string]int),
		lastPrinted: make(map[string]int),
		steps:       make(map[string]int),
	}
}

func (p *cliProgress) StartTable(kind string, total int) {
	if total < 0 {
		total = 0
	}
	p.totals[kind] = total
	p.counts[kind] = 0
	p.lastPrinted[kind] = 0
	p.steps[kind] = progressStep(total)
	fmt.Fprintf(p.out, "Backing up %s (%d records)\n", kind, total)
}

func (p *cliProgress) Increment(kind string, delta int) {
	if delta <= 0 {
		return
	}
	current := p.counts[kind] + delta
	p.counts[kind] = current
	total := p.totals[kind]
	step := p.steps[kind]
	if step <= 0 {
		step = 1
	}
	last := p.lastPrinted[kind]
	if current == total || last == 0 || current-last >= step {
		p.printProgress(kind, current, total)
		p.lastPrinted[kind] = current
	}
}

func (p *cliProgress) FinishTable(kind string) {
	current := p.counts[kind]
	total := p.totals[kind]
	if current != p.lastPrinted[kind] {
		p.printProgress(kind, current, total)
	}
	fmt.Fprintf(p.out, "Finished %s: %d/%d records\n", kind, current, total)
	delete(p.counts, kind)
	delete(p.totals, kind)
	delete(p.lastPrinted, kind)
	delete(p.steps, kind)
}

func (p *cliProgress) printProgress(kind string, current, total int) {
	fmt.Fprintf(p.out, "  %s: %d/%d\n", kind, current, total)
}

func progressStep(total int) int {
	if total <= 0 {
		return 1000
	}
	return min(max(total/20, 1), 1000)
}
