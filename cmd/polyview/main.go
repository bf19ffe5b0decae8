package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	apppkg "github.com/trailofbits/polyfile/internal/app"
	"github.com/trailofbits/polyfile/internal/config"
	"github.com/trailofbits/polyfile/internal/sbud"
)

func printHelp(w io.Writer) {
	fmt.Fprint(w, `polyview - Terminal hex viewer for polyfile output

USAGE:
    polyview [OPTIONS] [FILE]

Reads FILE, or standard input when FILE is "-" or omitted and input is
piped.

OPTIONS:
    -h, --help            Show this help message and exit
        --sbud            Treat the input as polyfile SBUD JSON (buffer and labels)
        --labels FILE     Load additional labels from a YAML file
        --base64          Input is base64 text rather than raw bytes
        --config FILE     Use FILE instead of the default config.toml
    -v, --verbose         Write a debug log under the user config directory
`)
}

type cliOptions struct {
	help       bool
	sbud       bool
	base64     bool
	verbose    bool
	labels     string
	configPath string
	input      string
}

var errUsage = errors.New("usage")

// parseArgs accepts "--flag value" and "--flag=value" forms.
func parseArgs(args []string) (cliOptions, error) {
	var opts cliOptions
	value := func(i *int, name, arg string) (string, error) {
		if v, ok := strings.CutPrefix(arg, name+"="); ok {
			return v, nil
		}
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%w: %s needs a value", errUsage, name)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		var err error
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "--sbud":
			opts.sbud = true
		case arg == "--base64":
			opts.base64 = true
		case arg == "-v" || arg == "--verbose":
			opts.verbose = true
		case arg == "--labels" || strings.HasPrefix(arg, "--labels="):
			opts.labels, err = value(&i, "--labels", arg)
		case arg == "--config" || strings.HasPrefix(arg, "--config="):
			opts.configPath, err = value(&i, "--config", arg)
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			if opts.input != "" {
				return opts, fmt.Errorf("%w: more than one input file", errUsage)
			}
			opts.input = arg
		default:
			return opts, fmt.Errorf("%w: unknown option %s", errUsage, arg)
		}
		if err != nil {
			return opts, err
		}
	}
	if opts.sbud && opts.base64 {
		return opts, fmt.Errorf("%w: --sbud and --base64 are exclusive", errUsage)
	}
	return opts, nil
}

// loadDocument reads the buffer and its labels as selected by opts. stdin
// is only read when it is not a terminal.
func loadDocument(opts cliOptions, stdin *os.File) (*sbud.Document, error) {
	var doc *sbud.Document
	var err error

	fromStdin := opts.input == "" || opts.input == "-"
	if fromStdin && term.IsTerminal(int(stdin.Fd())) {
		return nil, fmt.Errorf("%w: no input file and stdin is a terminal", errUsage)
	}

	switch {
	case opts.sbud && fromStdin:
		raw, readErr := io.ReadAll(stdin)
		if readErr != nil {
			return nil, fmt.Errorf("read stdin: %w", readErr)
		}
		doc, err = sbud.Parse("stdin", raw)
	case opts.sbud:
		doc, err = sbud.LoadFile(opts.input)
	case fromStdin:
		doc, err = sbud.LoadRaw(stdin, "stdin", opts.base64)
	default:
		f, openErr := os.Open(opts.input)
		if openErr != nil {
			return nil, openErr
		}
		defer f.Close()
		doc, err = sbud.LoadRaw(f, opts.input, opts.base64)
	}
	if err != nil {
		return nil, err
	}

	if opts.labels != "" {
		labels, err := sbud.LoadLabels(opts.labels)
		if err != nil {
			return nil, err
		}
		doc.Labels = append(doc.Labels, labels...)
	}
	return doc, nil
}

func loadConfig(opts cliOptions) (config.Config, string, error) {
	path := opts.configPath
	if path == "" {
		// Without a config directory only defaults and the environment apply.
		path, _ = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, err
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	return cfg, path, nil
}

func main() {
	// Set UTF-8 as fallback encoding so glyphs for control bytes render.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "polyview: %v\n\n", err)
		printHelp(os.Stderr)
		os.Exit(2)
	}
	if opts.help {
		printHelp(os.Stdout)
		os.Exit(0)
	}

	cfg, configPath, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "polyview: %v\n", err)
		os.Exit(1)
	}

	if cfg.Verbose {
		logFile, err := apppkg.EnableDebugLog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
		} else {
			defer logFile.Close()
		}
	}

	doc, err := loadDocument(opts, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "polyview: %v\n", err)
		if errors.Is(err, errUsage) {
			printHelp(os.Stderr)
			os.Exit(2)
		}
		os.Exit(1)
	}

	app, err := apppkg.NewApplication(doc, cfg, apppkg.Options{ConfigPath: configPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
}
