// Command detect prints the mood emoji for sentences given as arguments or on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/mood2emoji/internal/adapters/http/site"
	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/internal/config"
	"github.com/okian/mood2emoji/internal/domain/filter"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/internal/domain/sentiment"
	"github.com/spf13/cobra"
)

type options struct {
	teacher    bool
	configPath string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "detect [sentence...]",
		Short: "Detect the mood of a sentence",
		Long: `Prints an emoji and a short explanation for the mood of a sentence.
Arguments are joined into one sentence. Without arguments every line of stdin
is treated as a sentence.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().BoolVarP(&opts.teacher, "teacher", "t", false, "show the polarity score and how the app works")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file (defaults to $"+config.EnvConfigFile+")")
	return cmd
}

func run(ctx context.Context, in io.Reader, out io.Writer, opts *options, args []string) error {
	path := opts.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return err
	}

	svc := app.New(
		app.WithAnalyzer(sentiment.NewLexiconAnalyzer(sentiment.WithLexicon(cfg.Lexicon))),
		app.WithFilter(filter.New(filter.WithWords(cfg.BadWords))),
		app.WithThresholds(cfg.Thresholds()),
		app.WithMaxChars(cfg.MaxChars),
	)

	sentences, err := readSentences(in, args)
	if err != nil {
		return err
	}
	for _, s := range sentences {
		if err := printResult(ctx, out, svc, s, opts.teacher); err != nil {
			return err
		}
	}

	if opts.teacher {
		notes, err := site.LoadTeacherNotes(cfg.TeacherNotesFile)
		if err != nil {
			return err
		}
		md, err := notes.Markdown(svc.Thresholds())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s", md)
	}
	return nil
}

func readSentences(in io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var lines []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if line := sc.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, nil
}

func printResult(ctx context.Context, out io.Writer, svc *app.Service, text string, teacher bool) error {
	res, err := svc.Detect(ctx, text)
	if errors.Is(err, app.ErrTooLong) {
		fmt.Fprintf(out, "⚠️  Please keep it under %d characters.\n", svc.MaxChars())
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", res.Emoji, res.Explanation)
	if !teacher {
		return nil
	}
	fmt.Fprintf(out, "   Polarity Score: %.2f\n", res.Polarity)
	if res.Reason == mood.ReasonScored {
		for _, a := range svc.Explain(text) {
			fmt.Fprintf(out, "   %q → %+.2f\n", a.Word, a.Polarity)
		}
	}
	return nil
}
