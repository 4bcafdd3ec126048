// Command samp prints a random sample of the lines of a file or of
// standard input.
//
// Example usage:
//
//	cat data.txt | samp -n 20        # 20 random lines
//	samp -r 0.01 -s 7 access.log.gz  # about 1% of the lines, reproducibly
//	samp -n 100 -p data.csv          # keep the CSV header line
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/ghemawat/samp"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "0.3.0"

type options struct {
	count       int
	rate        float64
	seed        uint64
	headers     int
	ordered     bool
	maxLineSize string
	logLevel    string
}

// MainCommand returns the samp command.  Named input files are opened
// in fs.
func MainCommand(fs afero.Fs) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "samp (-n NUM | -r RATE) [flags] [FILE]",
		Short: "Randomly sample lines from a file or stdin using reservoir sampling",
		Long: `Randomly sample lines from a file or stdin using reservoir sampling.

With -n, exactly NUM lines are chosen uniformly at random (all lines if the
input is shorter) while holding only NUM lines in memory. With -r, every line
is kept independently with probability RATE. Input compressed with gzip or
zstd is decompressed automatically.

-p takes an optional header count: -p alone keeps one header line, and
-p 2, -p2 or -p=2 keep two. A non-numeric word after -p is read as FILE.`,
		Example:       "  cat data.txt | samp -n 20   # Sample 20 lines from data.txt",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fs, args, opts)
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.count, "count", "n", 0, "Number of lines to sample")
	flags.Float64VarP(&opts.rate, "rate", "r", 0, "Probability of keeping each line")
	flags.Uint64VarP(&opts.seed, "seed", "s", 0, "Seed for reproducible sampling")
	flags.IntVarP(&opts.headers, "preserve-headers", "p", 0,
		"Number of header lines to preserve (1 if specified without a value)")
	flags.Lookup("preserve-headers").NoOptDefVal = "1"
	flags.BoolVar(&opts.ordered, "ordered", false, "Print sampled lines in input order")
	flags.StringVar(&opts.maxLineSize, "max-line-size", "64MiB", "Longest input line accepted")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level")
	cmd.MarkFlagsMutuallyExclusive("count", "rate")
	return cmd
}

// config turns the parsed flags into a sampling configuration.
func (o *options) config(flags *pflag.FlagSet) (samp.Config, error) {
	cfg := samp.Config{Headers: o.headers, Ordered: o.ordered}
	switch {
	case flags.Changed("count"):
		cfg.Mode = samp.Count(o.count)
	case flags.Changed("rate"):
		cfg.Mode = samp.Rate(o.rate)
	default:
		return cfg, errors.WithHint(errors.New("no sample size given"),
			"pass -n NUM to keep NUM lines, or -r RATE to keep each line with probability RATE")
	}
	if flags.Changed("seed") {
		cfg.Source = samp.NewSource(o.seed)
	}
	return cfg, cfg.Validate()
}

func (o *options) lineLimit() (int, error) {
	n, err := humanize.ParseBytes(o.maxLineSize)
	if err != nil {
		return 0, errors.Wrap(err, "--max-line-size")
	}
	if n == 0 || n > math.MaxInt32 {
		return 0, errors.Newf("--max-line-size %s is out of range", o.maxLineSize)
	}
	return int(n), nil
}

func run(cmd *cobra.Command, fs afero.Fs, args []string, opts *options) error {
	log := NewLogger(cmd.ErrOrStderr())
	if err := log.SetLevel(opts.logLevel); err != nil {
		return err
	}
	cfg, err := opts.config(cmd.Flags())
	if err != nil {
		return err
	}
	limit, err := opts.lineLimit()
	if err != nil {
		return err
	}

	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	in, err := openInput(cmd, fs, name, log)
	if err != nil {
		return err
	}
	defer in.Close()

	log.With(LogParams{
		"input":   name,
		"mode":    cfg.Mode.String(),
		"headers": cfg.Headers,
		"ordered": cfg.Ordered,
		"seeded":  cfg.Source != nil,
	}).Debug("sampling")

	res, err := samp.SampleLines(samp.NewScanner(in, limit), cfg)
	if err != nil {
		return errors.Wrapf(err, "%s", name)
	}
	log.With(LogParams{
		"seen":     humanize.Comma(res.Seen),
		"selected": humanize.Comma(int64(len(res.Lines))),
		"headers":  len(res.Headers),
	}).Info("sampled")

	if err := samp.WriteResult(cmd.OutOrStdout(), res); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			log.Debug("output closed early")
			return nil
		}
		return errors.Wrap(err, "writing output")
	}
	return nil
}

// openInput opens the named file, or standard input for "-".
func openInput(cmd *cobra.Command, fs afero.Fs, name string, log *Logger) (io.ReadCloser, error) {
	if name != "-" {
		return samp.OpenInput(fs, name)
	}
	stdin := cmd.InOrStdin()
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		log.Warn("reading lines from the terminal; end input with Ctrl-D")
	}
	return samp.Decompress(stdin)
}

// attachHeaderCount rewrites "-p N", "--preserve-headers N" and "-pN"
// to the "-p=N" form pflag understands when N is a non-negative integer.
// Anything after "--" is left alone.
func attachHeaderCount(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return append(out, args[i:]...)
		case (a == "-p" || a == "--preserve-headers") && i+1 < len(args) && isCount(args[i+1]):
			out = append(out, a+"="+args[i+1])
			i++
		case strings.HasPrefix(a, "-p") && isCount(a[2:]):
			out = append(out, "-p="+a[2:])
		default:
			out = append(out, a)
		}
	}
	return out
}

func isCount(s string) bool {
	_, err := strconv.ParseUint(s, 10, 31)
	return err == nil
}

// runCommand runs cmd on the command-line arguments args.
func runCommand(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(attachHeaderCount(args))
	return cmd.Execute()
}

// reportError prints err and any hints attached to it.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(w, "HINT:", hint)
	}
}

func main() {
	// Receiving SIGPIPE turns writes to a closed stdout into EPIPE
	// errors, which run treats as a normal end of output.
	signal.Notify(make(chan os.Signal, 1), syscall.SIGPIPE)

	if err := runCommand(MainCommand(afero.NewOsFs()), os.Args[1:]); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
