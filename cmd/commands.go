package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

const (
	appName        = "fuelpump"
	appDescription = "Fuel pump registry: pump inventory, dispensing and status over HTTP."
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var cli struct {
	Config string `short:"c" type:"path" help:"Path to the config file (default configs/config.yml)."`

	Serve   struct{} `cmd:"" default:"1" help:"Run the HTTP API until SIGINT/SIGTERM."`
	Migrate struct{} `cmd:"" help:"Open the configured store, create the schema and exit."`
	Version struct{} `cmd:"" help:"Print the version and exit."`
}

// CliConfig carries what Run needs from the process, so tests can swap it.
type CliConfig struct {
	Exit   func(int)
	Stdout io.Writer
	Stderr io.Writer
}

func NewCliConfig() *CliConfig {
	return &CliConfig{
		Exit:   func(i int) { os.Exit(i) },
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run parses args and executes the selected command.
func Run(args []string, config *CliConfig) error {
	options := []kong.Option{
		kong.Name(appName),
		kong.Description(appDescription),
		kong.Exit(config.Exit),
		kong.Writers(config.Stdout, config.Stderr),
		kong.Vars{
			"version": version,
		},
	}

	parser, err := kong.New(&cli, options...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	switch ctx.Command() {
	case "serve":
		return serve(cli.Config)
	case "migrate":
		return migrate(cli.Config)
	case "version":
		_, err := fmt.Fprintln(config.Stdout, appName, version)
		return err
	default:
		return fmt.Errorf("unknown command %q", ctx.Command())
	}
}
