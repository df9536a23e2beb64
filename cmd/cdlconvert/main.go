// Command cdlconvert converts ASC CDL color correction files between the
// ALE, FLEx, CC, CCC, CDL and RNH formats.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/cdlconvert/internal/config"
	"github.com/FocuswithJustin/cdlconvert/internal/convert"
	"github.com/FocuswithJustin/cdlconvert/internal/formats"
	"github.com/FocuswithJustin/cdlconvert/internal/logging"
)

const version = "0.9.0"

// CLI defines the command-line interface for cdlconvert.
var CLI struct {
	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert CDL files (default command)"`
	Config  ConfigCmd  `cmd:"" help:"Print a sample configuration file"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd converts every input to each output format.
type ConvertCmd struct {
	Inputs      []string `arg:"" name:"input" help:"Files or directories to convert" type:"path"`
	Input       string   `short:"i" help:"Input format, overriding the file extension (ale, flex, cc, ccc, cdl, rcdl)"`
	Output      string   `short:"o" help:"Comma separated output formats (cc, ccc, cdl, rcdl). Default: cc"`
	Destination string   `short:"d" help:"Output directory. Default: ./converted" type:"path"`
	Halt        bool     `help:"Fail on id collisions, unresolved references and out of range values; with --check, on any finding"`
	Check       bool     `help:"Report unusual or invalid correction values"`
	NoOutput    bool     `name:"no-output" help:"Parse and render without writing files"`
	ConfigFile  string   `name:"config" help:"TOML configuration file" type:"path"`
	Report      string   `help:"Write a JSON run report to this path" type:"path"`
	LogLevel    string   `help:"Log level (debug, info, warn, error)"`
	LogFormat   string   `help:"Log format (text, json)"`

	stdout io.Writer `kong:"-"`
}

func (c *ConvertCmd) Run() error {
	cfg, found, err := config.Load(c.ConfigFile)
	if err != nil {
		return err
	}
	overrides := config.Overrides{
		Strict:      c.Halt,
		Check:       c.Check,
		DryRun:      c.NoOutput,
		Destination: c.Destination,
		LogLevel:    c.LogLevel,
		LogFormat:   c.LogFormat,
	}
	if c.Output != "" {
		overrides.Output = strings.Split(c.Output, ",")
	}
	if err := cfg.Apply(overrides); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	format, _ := logging.ParseFormat(cfg.LogFormat)
	logging.InitLogger(level, format)
	if found {
		logging.Debug("loaded config", "path", c.ConfigFile)
	} else if c.ConfigFile != "" {
		logging.Warn("config file not found, using defaults", "path", c.ConfigFile)
	}

	opts, err := options(cfg, c.Input)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inputs, err := formats.Expand(c.Inputs)
	if err != nil {
		return err
	}

	session := convert.NewSession(opts, logging.NewRunID())
	runErr := session.Run(ctx, inputs)

	if c.Report != "" {
		if err := session.Report().WriteFile(c.Report); err != nil {
			return err
		}
	}

	r := session.Report()
	verb := "wrote"
	if cfg.DryRun {
		verb = "would write"
	}
	logging.Info("run finished", "run_id", r.RunID, "inputs", len(r.Inputs), "outputs", len(r.Outputs),
		"findings", len(r.Findings), "errors", len(r.Errors))
	fmt.Fprintf(c.out(), "converted %d of %d inputs, %s %d files, %d findings\n",
		len(r.Inputs), len(inputs), verb, len(r.Outputs), len(r.Findings))
	return runErr
}

func (c *ConvertCmd) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

// options turns the resolved configuration into session options.
func options(cfg *config.Config, input string) (convert.Options, error) {
	outputs, err := cfg.Formats()
	if err != nil {
		return convert.Options{}, err
	}
	opts := convert.Options{
		Strict:      cfg.Strict,
		Outputs:     outputs,
		Destination: cfg.Destination,
		Check:       cfg.Check,
		DryRun:      cfg.DryRun,
	}
	if input != "" {
		if opts.Input, err = formats.FromName(input); err != nil {
			return convert.Options{}, err
		}
	}
	return opts, nil
}

// ConfigCmd prints the sample configuration.
type ConfigCmd struct{}

func (c *ConfigCmd) Run() error {
	fmt.Print(config.SampleConfig())
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("cdlconvert version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cdlconvert"),
		kong.Description("Convert ASC CDL color corrections between ALE, FLEx, CC, CCC, CDL and RNH files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
