// Command sdghtml formats, unfolds, validates and dumps HTML sources, and serves a live preview
// of a site.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("github.com/dpotapov/go-sdg")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath  string
	write       bool
	color       string
	width       int
	checkLinks  bool
	verbose     bool
	addr        string
	showVersion bool
}

// run executes the command line args and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("sdghtml", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVarP(&opts.write, "write", "w", false, "Write the result back to the source files (format, unfold)")
	flags.StringVar(&opts.color, "color", "auto", "Colored diagnostics: auto|on|off")
	flags.IntVar(&opts.width, "width", 0, "Wrap width of diagnostics (0 uses terminal width if available)")
	flags.BoolVar(&opts.checkLinks, "check-links", false, "Check http and https links while validating")
	flags.StringVar(&opts.addr, "addr", "localhost:8080", "Listen address of the preview server (serve)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug events")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version information")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintln(stderr, "Usage: sdghtml [flags] <format|unfold|validate|dump> files...")
		fmt.Fprintln(stderr, "       sdghtml [flags] serve dir")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	if flags.NArg() < 2 {
		flags.Usage()
		return 2
	}
	name, files := flags.Arg(0), flags.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		return 2
	}
	if opts.write && name != "format" && name != "unfold" {
		fmt.Fprintf(stderr, "--write does not apply to %s\n", name)
		return 2
	}

	color, err := resolveColor(opts.color, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --color %q: %v\n", opts.color, err)
		return 2
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if opts.checkLinks {
		cfg.CheckLinks = true
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}

	a, err := newApp(cfg, opts.write, stdout, &printer{
		w:     stderr,
		color: color,
		width: resolveWidth(opts.width, stderr),
	}, slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer a.close()
	a.addr = opts.addr

	if ok := cmd(ctx, a, files); !ok {
		return 1
	}
	return 0
}
