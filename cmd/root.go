package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	bubble_adapter "github.com/ionut-t/rowedit/adapter-bubbletea"
	"github.com/ionut-t/rowedit/buffer"
	"github.com/ionut-t/rowedit/highlighter"
	"github.com/ionut-t/rowedit/internal/config"
	"github.com/ionut-t/rowedit/internal/watcher"
)

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:     "rowedit [file]",
	Short:   "A small modal text editor for the terminal",
	Long:    `rowedit opens a file in a vim-like modal editor with syntax highlighting for Rust, Go and C.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/rowedit/config.yaml)")
	rootCmd.Flags().String("theme", "", "chroma style used for highlighting")
	rootCmd.Flags().Bool("line-numbers", false, "show line numbers")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write a debug log")

	_ = viper.BindPFlag("theme", rootCmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("line_numbers", rootCmd.Flags().Lookup("line-numbers"))
}

func initConfig() {
	cfg, cfgErr = config.Load(viper.GetViper(), cfgFile)
}

func runEditor(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}

	if debug {
		f, err := tea.LogToFile(cfg.LogFile, "rowedit")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = f.Close() }()
	} else {
		log.SetOutput(io.Discard)
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}

	doc, err := openDocument(path)
	if err != nil {
		return err
	}

	palette, err := paletteFor(termenv.ColorProfile(), cfg.Theme)
	if err != nil {
		return err
	}

	// The background is queried before the program owns stdin, so the
	// OSC 11 reply is not read as key input.
	opts := []bubble_adapter.Option{
		bubble_adapter.WithTheme(themeFor(lipgloss.HasDarkBackground())),
		bubble_adapter.WithPalette(palette),
		bubble_adapter.WithLineNumbers(cfg.LineNumbers),
		bubble_adapter.WithMessageTimeout(cfg.MessageTimeout),
		bubble_adapter.WithVersion(version),
	}

	if path != "" {
		w, err := watcher.New(path)
		if err != nil {
			log.Printf("file watcher disabled: %v", err)
		} else {
			defer func() { _ = w.Close() }()
			opts = append(opts, bubble_adapter.WithWatcher(w))
		}
	}

	model := bubble_adapter.New(doc, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openDocument loads path. A file that does not exist yet opens as an empty
// document that will be created on save.
func openDocument(path string) (*buffer.Document, error) {
	if path == "" {
		return buffer.New(), nil
	}

	doc, err := buffer.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return buffer.FromString(path, ""), nil
	}
	return doc, err
}

func paletteFor(profile termenv.Profile, theme string) (highlighter.Palette, error) {
	if theme == "" {
		return highlighter.DefaultPalette(profile), nil
	}
	return highlighter.ThemePalette(profile, theme)
}

func themeFor(darkBackground bool) bubble_adapter.Theme {
	if darkBackground {
		return bubble_adapter.DefaultTheme
	}
	return bubble_adapter.LightTheme
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
