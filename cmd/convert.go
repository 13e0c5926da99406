package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tsconv/internal/clipboard"
	"github.com/zjrosen/tsconv/internal/config"
	"github.com/zjrosen/tsconv/internal/extension"
	"github.com/zjrosen/tsconv/internal/flags"
	"github.com/zjrosen/tsconv/internal/ui/toaster"
)

var (
	convertFromClipboard bool
	convertNoRecord      bool
)

var errNoInput = errors.New("nothing to convert: pass text, pipe it on stdin, or use --clipboard")

var convertCmd = &cobra.Command{
	Use:   "convert [text...]",
	Short: "Convert the _ts value in text or the clipboard",
	Long: `Convert the first _ts value found in text and print its IST date.

Text is taken from the arguments, joined by spaces, or from stdin when no
arguments are given. --clipboard reads the system clipboard instead, exactly
like the convert button.

Examples:
  # Convert a JSON document
  tsconv convert '{"_ts": 1700000000}'

  # Convert whatever was copied last
  tsconv convert --clipboard

  # Pipe a log line without saving it to history
  tail -n1 app.log | tsconv convert --no-record`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		c := cfg
		if convertNoRecord {
			c.Flags = maps.Clone(cfg.Flags)
			if c.Flags == nil {
				c.Flags = map[string]bool{}
			}
			c.Flags[flags.FlagNoRecord] = true
		}

		rt, err := openRuntime(c)
		if err != nil {
			return err
		}
		defer func() { _ = rt.Close() }()

		presenter := writerPresenter{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
		pipeline := rt.Pipeline(presenter, extension.WithClipboard(clipboard.System{}))

		in := convertInput{fromClipboard: convertFromClipboard, args: args, stdin: cmd.InOrStdin()}
		if err := runConvert(cmd.Context(), pipeline, in); err != nil {
			if !errors.Is(err, errNoInput) {
				// The pipeline already printed the message.
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return err
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVar(&convertFromClipboard, "clipboard", false, "read the text from the system clipboard")
	convertCmd.Flags().BoolVar(&convertNoRecord, "no-record", false, "do not save the conversion to history")
	rootCmd.AddCommand(convertCmd)
}

type convertInput struct {
	fromClipboard bool
	args          []string
	stdin         io.Reader
}

// runConvert runs one conversion. A RecordError still counts as success on
// the terminal since the result was printed.
func runConvert(ctx context.Context, p *extension.Pipeline, in convertInput) error {
	var err error
	if in.fromClipboard {
		_, err = p.ConvertClipboard(ctx)
	} else {
		text := strings.Join(in.args, " ")
		if text == "" && in.stdin != nil {
			raw, readErr := io.ReadAll(in.stdin)
			if readErr != nil {
				return fmt.Errorf("reading stdin: %w", readErr)
			}
			text = strings.TrimSpace(string(raw))
		}
		if text == "" {
			return errNoInput
		}
		_, err = p.ConvertText(ctx, text)
	}

	var recErr *extension.RecordError
	if errors.As(err, &recErr) {
		return nil
	}
	return err
}

// writerPresenter prints toasts as lines: errors to errOut, the rest to out.
type writerPresenter struct {
	out    io.Writer
	errOut io.Writer
}

func (w writerPresenter) Show(message string, opts toaster.Options) int {
	if opts.Kind == toaster.KindError {
		_, _ = fmt.Fprintf(w.errOut, "error: %s\n", message)
		return 1
	}
	_, _ = fmt.Fprintln(w.out, message)
	return 1
}
