package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Stohl/tsp-skolan-sub000/internal/app"
	"github.com/Stohl/tsp-skolan-sub000/internal/mastery"
	"github.com/Stohl/tsp-skolan-sub000/internal/session"
	"github.com/Stohl/tsp-skolan-sub000/internal/ui/components"
	"github.com/Stohl/tsp-skolan-sub000/internal/ui/theme"
)

const choiceCount = 4

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a practice session",
	Long: `Run a practice session on the terminal.

For each entry answer y (knew it) or n (did not), s to skip, q to stop.
In multiple-choice mode answer with the number of the matching option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		items, _ := cmd.Flags().GetStringSlice("items")
		seed, _ := cmd.Flags().GetInt64("seed")

		mode, err := session.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sess, err := d.service.StartSession(cmd.Context(), mode, app.StartOptions{Items: items, Seed: seed})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%s practice: %d entries", sess.Mode, sess.Len())))
		if err := runSession(cmd, d.service, sess, bufio.NewScanner(cmd.InOrStdin()), out); err != nil {
			return err
		}

		printSummary(out, d.service.Summary(sess))
		return nil
	},
}

func init() {
	practiceCmd.Flags().String("mode", string(session.ModeMixed), "Session mode: mixed, multiple-choice, custom or phrases")
	practiceCmd.Flags().StringSlice("items", nil, "Item IDs for custom mode (comma separated)")
	practiceCmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
}

// runSession prompts for each entry until the session is done, the input
// ends, or the learner quits.
func runSession(cmd *cobra.Command, svc *app.Service, sess *session.Session, in *bufio.Scanner, out io.Writer) error {
	ctx := cmd.Context()
	for !sess.Done() {
		e, _ := sess.Next()

		var (
			options []string
			answer  int
		)
		if sess.Mode == session.ModeMultipleChoice {
			opts, idx, err := svc.Choices(sess, e.ID, choiceCount)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n[%d/%d] What does sign %s mean?\n", sess.Current+1, sess.Len(), theme.Body.Render(e.ID))
			for i, o := range opts {
				options = append(options, o.ID)
				fmt.Fprintf(out, "  %d) %s\n", i+1, o.Text)
			}
			answer = idx
		} else {
			fmt.Fprintf(out, "\n[%d/%d] %s %s ", sess.Current+1, sess.Len(), theme.Body.Render(e.Text), theme.Hint.Render("(y/n/s/q)"))
		}

		if !in.Scan() {
			return in.Err()
		}
		reply := strings.ToLower(strings.TrimSpace(in.Text()))

		var correct bool
		switch {
		case reply == "q":
			return nil
		case reply == "s":
			sess.Skip()
			continue
		case options != nil:
			n, err := strconv.Atoi(reply)
			if err != nil || n < 1 || n > len(options) {
				fmt.Fprintln(out, theme.Hint.Render("answer with an option number"))
				continue
			}
			correct = n-1 == answer
		case reply == "y" || reply == "j":
			correct = true
		case reply == "n":
			correct = false
		default:
			fmt.Fprintln(out, theme.Hint.Render("answer y, n, s or q"))
			continue
		}

		if e.Phrase {
			if err := svc.RecordPhraseAnswer(ctx, sess, e.ID, correct); err != nil {
				return err
			}
			printVerdict(out, correct, "")
			continue
		}

		outcome, err := svc.RecordAnswer(ctx, sess, e.ID, correct)
		if err != nil && !warnOnly(err) {
			return err
		}
		printOutcome(out, correct, outcome)
		if err != nil {
			fmt.Fprintln(out, theme.Hint.Render("progress not saved: "+err.Error()))
		}
	}
	return nil
}

func printVerdict(out io.Writer, correct bool, extra string) {
	verdict := theme.Incorrect.Render("✗")
	if correct {
		verdict = theme.Correct.Render("✓")
	}
	fmt.Fprintln(out, verdict, extra)
}

func printOutcome(out io.Writer, correct bool, o mastery.Outcome) {
	extra := theme.Level(o.Record.Level).Render(mastery.Label(o.Record))
	if o.Transition != nil {
		extra += "  " + theme.Title.Render(fmt.Sprintf("now %s", o.Transition.To))
	}
	printVerdict(out, correct, extra)
}

func printSummary(out io.Writer, s *session.Summary) {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Session summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d/%d correct in %s\n", s.TotalCorrect, s.TotalQuestions, s.Duration.Round(time.Second))
	b.WriteString(components.NewProgressBar("accuracy", s.Accuracy, true, 40).View())
	fmt.Fprintln(out, theme.Card.Render(b.String()))
}
