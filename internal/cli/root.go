// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatview/internal/config"
	"github.com/jeranaias/chatview/internal/transcript"
	"github.com/jeranaias/chatview/internal/ui/chat"
	"github.com/jeranaias/chatview/internal/ui/components"
	"github.com/jeranaias/chatview/internal/watch"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// flags holds the command-line overrides of the config file.
type flags struct {
	configPath string
	locale     string
	theme      string
	noSound    bool
	logPath    string
	plain      bool
}

// NewRootCommand builds the chatview command.
func NewRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "chatview [transcript]",
		Short:         "View and edit a chat transcript in the terminal",
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &CommandError{Action: "parse arguments", Code: ExitUsageError, Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &CommandError{Action: "parse flags", Code: ExitUsageError, Err: err}
	})

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default ~/.chatview/config.toml)")

	fl := cmd.Flags()
	fl.StringVar(&f.locale, "locale", "", "UI language, e.g. de or zh-Hans")
	fl.StringVar(&f.theme, "theme", "", "color theme: auto, dark or light")
	fl.BoolVar(&f.noSound, "no-sound", false, "never ring the terminal bell")
	fl.StringVar(&f.logPath, "log", "", "write logs to this file")
	fl.BoolVar(&f.plain, "plain", false, "print the transcript once and exit")

	cmd.AddCommand(newConfigCommand(&f))
	return cmd
}

// Execute runs the root command and exits with its status on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		DisplayError(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}

func run(cmd *cobra.Command, args []string, f flags) error {
	if _, err := loadConfig(f); err != nil {
		return configError(err)
	}
	cfg := config.Global()

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return &CommandError{Action: "open log", Code: ExitGeneralError, Err: err}
	}
	defer closeLog()

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	file, err := readTranscript(path, cmd.InOrStdin())
	if err != nil {
		return transcriptError(err)
	}

	if f.plain || !IsStdoutTTY() {
		width, _ := GetTerminalSize()
		return renderPlain(cmd.OutOrStdout(), file, width)
	}
	return runTUI(f, path, file)
}

// loadConfig reads the config file, applies the flag overrides and installs
// the result as the global configuration.
func loadConfig(f flags) (*config.Config, error) {
	return config.ReloadGlobal(f.configPath, f.apply)
}

// apply copies the flags that were set over cfg.
func (f flags) apply(cfg *config.Config) {
	if f.theme != "" {
		cfg.UI.Theme = f.theme
	}
	if f.locale != "" {
		cfg.UI.Locale = f.locale
	}
	if f.noSound {
		cfg.UI.Sound = false
	}
	if f.logPath != "" {
		cfg.Log.Enabled = true
		cfg.Log.File = f.logPath
	}
}

// configFilePath returns the --config path or the default location.
func configFilePath(f flags) (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	return config.ConfigPathTOML()
}

// setupLogging sends the standard logger to the configured file, or
// discards it. The TUI owns stdout and stderr while it runs.
func setupLogging(cfg *config.Config) (func(), error) {
	if !cfg.Log.Enabled || cfg.Log.File == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.Log.File, "chatview")
	if err != nil {
		return nil, err
	}
	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}, nil
}

// readTranscript loads path, stdin for "-", or nothing for "".
func readTranscript(path string, stdin io.Reader) (transcript.File, error) {
	switch path {
	case "":
		return transcript.File{}, nil
	case "-":
		return transcript.Parse(stdin)
	default:
		return transcript.Load(path)
	}
}

// renderPlain prints the transcript once.
func renderPlain(w io.Writer, file transcript.File, width int) error {
	list := newChatModel(file, nil, nil)
	list.SetSize(width, DefaultTerminalHeight)
	list.Init()
	_, err := fmt.Fprintln(w, list.Snapshot())
	return err
}

// newTUIList builds the interactive list for the global configuration.
func newTUIList(file transcript.File) *chat.Model {
	var sounder components.Sounder
	if config.Global().UI.Sound {
		sounder = components.NewBell(os.Stderr)
	}
	return newChatModel(file, sounder, components.SystemClipboard{})
}

func runTUI(f flags, path string, file transcript.File) error {
	var transcripts *transcript.Watcher
	if path != "" && path != "-" {
		w, err := transcript.NewWatcher(path, transcript.DefaultInterval)
		if err != nil {
			return err
		}
		if err := w.Watch(); err != nil {
			w.Close()
			return err
		}
		defer w.Close()
		transcripts = w
	}

	app := NewApp(newTUIList(file), transcripts)
	if configs := watchConfig(f); configs != nil {
		defer configs.Close()
		app.WithConfigWatcher(configs, newTUIList)
	}

	log.Printf("starting viewer: %d messages, path=%q", len(file.Messages), path)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// watchConfig follows the config file so edits apply without a restart. It
// returns nil when there is no file to follow.
func watchConfig(f flags) *watch.Watcher[*config.Config] {
	path, err := configFilePath(f)
	if err != nil {
		log.Printf("config: %v", err)
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	w, err := watch.New[*config.Config]("config", path, watch.DefaultInterval, func(p string) (*config.Config, error) {
		return config.ReloadGlobal(p, f.apply)
	})
	if err != nil {
		log.Printf("config: %v", err)
		return nil
	}
	if err := w.Watch(); err != nil {
		log.Printf("config: %v", err)
		w.Close()
		return nil
	}
	return w
}
