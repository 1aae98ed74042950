package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/careerwatch/internal/cmd"
	"github.com/jimezsa/careerwatch/internal/config"
	"github.com/jimezsa/careerwatch/internal/ui"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	fallbackUI := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("CAREERWATCH_COLOR")), false)

	if err := config.LoadDotEnv(config.DotEnvFileName); err != nil {
		fallbackUI.Errorf("%v", err)
		return 1
	}

	cli := cmd.NewCLI()
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("careerwatch"),
		kong.Description("Watch a careers page job count and email on change."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fallbackUI.Errorf("%v", err)
		return 1
	}

	configPath, explicit, err := config.ResolvePath(cli.ConfigFile)
	if err != nil {
		fallbackUI.Errorf("%v", err)
		return 1
	}
	cfg, err := config.Load(configPath, explicit)
	if err != nil {
		fallbackUI.Errorf("%v", err)
		return 1
	}

	colorMode := ui.NormalizeColorMode(cli.Color)
	userInterface := ui.New(os.Stdout, os.Stderr, colorMode, cli.JSON)

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	logger.Debug().
		Str("config", configPath).
		Str("url", cfg.TargetURL).
		Str("selector", cfg.Selector).
		Str("state_file", cfg.StateFile).
		Str("smtp_host", cfg.SMTP.Server).
		Msg("config loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runCtx := &cmd.Context{
		Ctx:        ctx,
		Out:        os.Stdout,
		Err:        os.Stderr,
		UI:         userInterface,
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		Version:    versionString,
		ColorMode:  colorMode,
	}

	if err := kctx.Run(runCtx); err != nil {
		userInterface.Errorf("%v", err)
		return 1
	}
	return 0
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}
