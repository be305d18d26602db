// Package main provides the CLI entrypoint for fieldpath.
//
// fieldpath reads and writes fields of YAML documents addressed by
// dotted/bracketed paths, and lists the bindable paths of a sample view-model:
//   - fieldpath normalize <field>
//   - fieldpath get [-dump] <file.yaml> <path>
//   - fieldpath set [-w] <file.yaml> <path> <yaml-value> [<path> <yaml-value>...]
//   - fieldpath paths
//   - fieldpath config
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"fieldpath/internal/binding"
	"fieldpath/internal/config"
	"fieldpath/internal/diagnostic"
	"fieldpath/internal/pathexpr"
	"fieldpath/store"
)

const usage = `usage: fieldpath [-config file] <command> [args]

commands:
  normalize <field>                     print the flattened name of a field path
  get [-dump] <file.yaml> <path>        print the value at path
  set [-w] <file.yaml> <path> <value>...
                                        replace values at paths (values are YAML)
  paths                                 list the bindable paths of the sample ledger
  config                                print the effective configuration
`

var errUsage = errors.New("invalid arguments")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("fieldpath", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", "", "path to a YAML config file")

	if err := global.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		printError(stderr, err)
		return 1
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}

	app := &cli{cfg: cfg, stdout: stdout, stderr: stderr}

	switch rest[0] {
	case "normalize":
		err = app.normalize(rest[1:])
	case "get":
		err = app.get(rest[1:])
	case "set":
		err = app.set(rest[1:])
	case "paths":
		err = app.paths()
	case "config":
		err = app.config()
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}

	if err != nil {
		printError(stderr, err)

		if errors.Is(err, errUsage) {
			fmt.Fprint(stderr, usage)
			return 2
		}

		return 1
	}

	return 0
}

type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.LoadFile(path)
}

// sink logs diagnostics to stderr.
func (c *cli) sink() diagnostic.Sink {
	return diagnostic.NewSlogSink(slog.New(slog.NewTextHandler(c.stderr, nil)))
}

// registry builds a binding session that logs warnings to stderr.
func (c *cli) registry() *binding.Registry {
	return binding.NewRegistry(binding.Options{
		Members:   c.cfg.MemberOptions(),
		TypeCheck: c.cfg.TypeCheckEnabled(),
		Sink:      c.sink(),
	})
}

func (c *cli) normalize(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: normalize takes exactly one field", errUsage)
	}

	fmt.Fprintln(c.stdout, pathexpr.Normalize(args[0]))

	return nil
}

func (c *cli) get(args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	dump := fs.Bool("dump", false, "dump the value with its Go types")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if fs.NArg() != 2 {
		return fmt.Errorf("%w: get takes a file and a path", errUsage)
	}

	file, path := fs.Arg(0), fs.Arg(1)

	doc, err := loadDocument(file)
	if err != nil {
		return err
	}

	conn, err := c.registry().Connect(doc, file)
	if err != nil {
		return err
	}

	v, err := conn.Get(path)
	if err != nil {
		return err
	}

	if *dump {
		spew.Fdump(c.stdout, v)
		return nil
	}

	return writeYAML(c.stdout, v)
}

func (c *cli) set(args []string) error {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	write := fs.Bool("w", false, "write the result back to the file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if fs.NArg() < 3 || fs.NArg()%2 != 1 {
		return fmt.Errorf("%w: set takes a file and one or more path/value pairs", errUsage)
	}

	file := fs.Arg(0)

	doc, err := loadDocument(file)
	if err != nil {
		return err
	}

	var updates []binding.Update

	for i := 1; i < fs.NArg(); i += 2 {
		path, raw := fs.Arg(i), fs.Arg(i+1)

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return fmt.Errorf("failed to parse value %q: %w", raw, err)
		}

		updates = append(updates, binding.Update{Path: path, Value: value})
	}

	conn, err := c.registry().Connect(doc, file)
	if err != nil {
		return err
	}

	diags := conn.Apply(updates)

	log := c.sink()
	for _, w := range diags.Warnings {
		log.Emit(w)
	}

	if err := diags.Error(); err != nil {
		return err
	}

	if !*write {
		return writeYAML(c.stdout, doc)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := os.WriteFile(file, out, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", file, err)
	}

	return nil
}

func (c *cli) paths() error {
	conn, err := c.registry().Connect(store.SampleLedger(), "ledger")
	if err != nil {
		return err
	}

	heading := newColor(c.stdout, color.Bold)
	heading.Fprintf(c.stdout, "%-36s %-42s %s\n", "PATH", "NAME", "VALUE")

	for _, path := range conn.Paths() {
		v, err := conn.Get(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.stdout, "%-36s %-42s %v\n", path, conn.SyntheticName(path), v)
	}

	return nil
}

func (c *cli) config() error {
	out, err := config.Marshal(c.cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	_, err = c.stdout.Write(out)

	return err
}

func loadDocument(file string) (any, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", file, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", file, err)
	}

	return doc, nil
}

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	_, err = w.Write(out)

	return err
}

func printError(w io.Writer, err error) {
	newColor(w, color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

// newColor returns a color that is only applied when w is a terminal.
func newColor(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)

	f, ok := w.(*os.File)
	if ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}
