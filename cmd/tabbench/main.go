// Command tabbench reads and writes fixture records with every registered
// engine and prints the throughput of each.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
)

// CLI is the root command.
type CLI struct {
	LogLevel string           `help:"Log level (debug, info, warn, error)." default:"info" enum:"debug,info,warn,error" env:"TABBENCH_LOG_LEVEL"`
	Config   kong.ConfigFlag  `help:"TOML file with flag defaults." short:"c"`
	Version  kong.VersionFlag `help:"Print version and exit."`

	Run  RunCmd  `cmd:"" default:"withargs" help:"Run read and write workloads."`
	List ListCmd `cmd:"" help:"List registered engines and shapes."`
}

var version = "dev"

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tabbench"),
		kong.Description("Throughput comparison of delimited record codecs."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Configuration(TOMLLoader, "tabbench.toml"),
	)

	logger, err := newLogger(cli.LogLevel)
	ctx.FatalIfErrorf(err)

	if err := ctx.Run(logger); err != nil {
		logger.Error("tabbench failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	})), nil
}
