package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mermaidlint/internal/config"
	"github.com/felixgeelhaar/mermaidlint/internal/log"
	"github.com/felixgeelhaar/mermaidlint/internal/ux"
)

// CommandContext holds the persistent flags, the loaded configuration and the
// logger built from both. Commands create it in RunE:
//
//	func runCommand(cmd *cobra.Command, args []string) error {
//		cc, err := NewCommandContext(cmd)
//		if err != nil {
//			return err
//		}
//		// Use cc.Config, cc.Logger, cc.Console...
//	}
type CommandContext struct {
	Verbose   bool
	NoColor   bool
	LogLevel  string
	LogFormat string
	LogFile   string

	ConfigPath string
	Config     *config.Config
	Logger     *log.Logger

	Out     io.Writer
	Err     io.Writer
	Console *ux.Console
}

// NewCommandContext reads persistent flags, loads configuration, and installs
// the process logger. Flags win over configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags := cmd.Flags()

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, err
	}
	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return nil, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, err
	}
	logFormat, err := flags.GetString("log-format")
	if err != nil {
		return nil, err
	}
	logFile, err := flags.GetString("log-file")
	if err != nil {
		return nil, err
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}
	cfg, err := config.Load(configPath, wd)
	if err != nil {
		return nil, err
	}

	cc := &CommandContext{
		Verbose:    verbose,
		NoColor:    noColor,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		LogFile:    logFile,
		ConfigPath: cfg.Source,
		Config:     cfg,
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
	}
	cc.Console = ux.NewConsole(cc.Out, cc.Err, noColor)

	logger, err := cc.newLogger()
	if err != nil {
		return nil, err
	}
	cc.Logger = logger
	log.SetDefaultLogger(logger)

	logger.Debug("configuration loaded", "source", cfg.Source, "runners", len(cfg.Runners))
	return cc, nil
}

func (cc *CommandContext) newLogger() (*log.Logger, error) {
	lc := log.DefaultConfig()

	levelName := firstNonEmpty(cc.LogLevel, cc.Config.Log.Level)
	if cc.Verbose {
		levelName = "debug"
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, usageError(err)
	}
	lc.Level = level

	format, err := log.ParseFormat(firstNonEmpty(cc.LogFormat, cc.Config.Log.Format))
	if err != nil {
		return nil, usageError(err)
	}
	lc.Format = format

	lc.Output = log.NewOutput(cc.Err)
	if file := firstNonEmpty(cc.LogFile, cc.Config.Log.File); file != "" {
		lc.Output = log.OutputFile(file)
	}
	return log.New(lc), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
