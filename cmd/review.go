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
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eslsoft/phraser/internal/app"
	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/internal/usecase"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	reviewCountKey = "review.count"
	quitCommand    = ":q"
	editCommand    = ":e"
	deleteCommand  = ":d"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start an interactive flashcard session",
	Long: `Draws phrases one at a time, favouring the ones you get wrong.

With active input enabled (phraser settings set active-input true) you type
each answer and it is checked and scored. Otherwise press Enter to reveal
the answer. At any prompt, ":e SOURCE,TARGET" replaces the texts of the
current phrase, ":d" deletes it and ":q" stops the session; a summary of
the session is printed at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			session := &reviewSession{
				review:   c.Review,
				items:    c.Items,
				settings: c.Settings,
				in:       bufio.NewReader(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
			}
			return session.run(cmd, c.Config.Review.Count)
		})
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().IntP("count", "n", 0, "stop after this many cards (0 means until :q)")

	bindFlagToViper(reviewCountKey, reviewCmd.Flags().Lookup("count"))
}

type reviewSession struct {
	review   usecase.ReviewUsecase
	items    usecase.ItemUsecase
	settings usecase.SettingsUsecase
	in       *bufio.Reader
	out      io.Writer
}

func (s *reviewSession) run(cmd *cobra.Command, count int) error {
	ctx := cmd.Context()
	for i := 0; count == 0 || i < count; i++ {
		card, ok := s.review.Next(ctx)
		if !ok {
			if i == 0 {
				fmt.Fprintln(s.out, "No phrases yet. Add some with `phraser add SOURCE TARGET`.")
				return nil
			}
			break
		}
		settings := s.settings.Load(ctx)
		palette := newPalette(settings.ColorCodedFeedbackEnabled)

		fmt.Fprintf(s.out, "\n[%d] %s\n", i+1, palette.prompt.Sprint(card.Prompt))
		if card.Hint != "" && !card.Reverse {
			fmt.Fprintf(s.out, "    %s\n", palette.hint.Sprint(card.Hint))
		}

		var quit bool
		var err error
		if settings.ActiveInputEnabled {
			quit, err = s.askActive(cmd, card, palette)
		} else {
			quit, err = s.askPassive(ctx, card, palette)
		}
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}
	s.printSummary()
	return nil
}

func (s *reviewSession) askActive(cmd *cobra.Command, card usecase.Card, p palette) (bool, error) {
	fmt.Fprint(s.out, "> ")
	line, ok := s.readLine()
	if !ok || line == quitCommand {
		return true, nil
	}
	if handled, err := s.handleCommand(cmd.Context(), card, line); handled || err != nil {
		return false, err
	}
	out, err := s.review.Answer(cmd.Context(), card, line)
	if errors.Is(err, entity.ErrActiveInputDisabled) {
		// Setting flipped mid-session; treat as a reveal.
		s.reveal(card, p)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if out.Correct {
		fmt.Fprintln(s.out, p.correct.Sprint("✓ Correct"))
	} else {
		fmt.Fprintf(s.out, "%s %s\n", p.incorrect.Sprint("✗ Incorrect, the answer is"), out.Expected)
	}
	if card.Reverse && card.Hint != "" {
		fmt.Fprintf(s.out, "    %s\n", p.hint.Sprint(card.Hint))
	}
	return false, nil
}

func (s *reviewSession) askPassive(ctx context.Context, card usecase.Card, p palette) (bool, error) {
	fmt.Fprint(s.out, "(Enter to reveal, :e/:d to edit or delete, :q to quit) ")
	line, ok := s.readLine()
	if !ok || line == quitCommand {
		return true, nil
	}
	if handled, err := s.handleCommand(ctx, card, line); handled || err != nil {
		return false, err
	}
	s.reveal(card, p)
	return false, nil
}

// handleCommand runs an edit or delete command typed at a prompt and
// reports whether line was one. The card is not scored either way.
func (s *reviewSession) handleCommand(ctx context.Context, card usecase.Card, line string) (bool, error) {
	id := card.Item.ID
	switch {
	case line == deleteCommand:
		if s.items.Delete(ctx, id) {
			fmt.Fprintf(s.out, "Deleted %s\n", id)
		} else {
			fmt.Fprintf(s.out, "Phrase %s no longer exists\n", id)
		}
		return true, nil
	case line == editCommand || strings.HasPrefix(line, editCommand+" "):
		source, target, ok := parseEditArgs(strings.TrimPrefix(line, editCommand))
		if !ok {
			fmt.Fprintln(s.out, "usage: :e SOURCE,TARGET")
			return true, nil
		}
		updated, err := s.items.Update(ctx, id, source, target)
		if errors.Is(err, entity.ErrInvalidItemText) {
			fmt.Fprintln(s.out, err)
			return true, nil
		}
		if err != nil {
			return true, err
		}
		if !updated {
			fmt.Fprintf(s.out, "Phrase %s no longer exists\n", id)
			return true, nil
		}
		fmt.Fprintf(s.out, "Updated %s: %s = %s\n", id, strings.TrimSpace(source), strings.TrimSpace(target))
		return true, nil
	}
	return false, nil
}

// parseEditArgs splits "SOURCE,TARGET" the way CSV import does: quoted
// fields are allowed and columns after the second belong to the target.
func parseEditArgs(raw string) (string, string, bool) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(raw)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	fields, err := reader.Read()
	if err != nil || len(fields) < 2 {
		return "", "", false
	}
	return fields[0], strings.Join(fields[1:], ","), true
}

func (s *reviewSession) reveal(card usecase.Card, p palette) {
	fmt.Fprintf(s.out, "= %s\n", p.answer.Sprint(card.Answer))
	if card.Reverse && card.Hint != "" {
		fmt.Fprintf(s.out, "    %s\n", p.hint.Sprint(card.Hint))
	}
}

func (s *reviewSession) readLine() (string, bool) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (s *reviewSession) printSummary() {
	tally := s.review.Session()
	fmt.Fprintf(s.out, "\nSession: %d shown, %d correct, %d incorrect\n", tally.Shown, tally.Correct, tally.Incorrect)
}

type palette struct {
	prompt    *color.Color
	hint      *color.Color
	answer    *color.Color
	correct   *color.Color
	incorrect *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		prompt:    color.New(color.Bold),
		hint:      color.New(color.Faint),
		answer:    color.New(color.Bold),
		correct:   color.New(color.FgGreen, color.Bold),
		incorrect: color.New(color.FgRed, color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{p.prompt, p.hint, p.answer, p.correct, p.incorrect} {
			c.DisableColor()
		}
	}
	return p
}
