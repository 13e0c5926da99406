package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/tsconv/internal/app"
	"github.com/zjrosen/tsconv/internal/clipboard"
	"github.com/zjrosen/tsconv/internal/config"
	"github.com/zjrosen/tsconv/internal/extension"
	"github.com/zjrosen/tsconv/internal/log"
	"github.com/zjrosen/tsconv/internal/ui/toaster"
	"github.com/zjrosen/tsconv/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can leak into the text area.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".tsconv/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tsconv",
	Short: "Convert _ts epoch values to Indian Standard Time",
	Long: `tsconv finds the _ts epoch value in copied or selected text and shows it as
a human readable IST date with a relative age. Conversions are kept in a
short history shared by every tsconv process.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Assigned here rather than in the literal to avoid an initialization
	// cycle (openLog compares against rootCmd).
	rootCmd.PersistentPreRunE = initLogging

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/tsconv/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by TSCONV_DEBUG)")
	rootCmd.PersistentFlags().String("history", "",
		"history database path (empty string keeps history in memory)")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable reloading history when another process changes it")

	_ = viper.BindPFlag("history.path", rootCmd.PersistentFlags().Lookup("history"))
}

func initConfig() {
	setDefaults(config.Defaults())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Lookup order: .tsconv/config.yaml, then ~/.config/tsconv/config.yaml.
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "tsconv"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, _ := os.UserHomeDir()
			defaultPath := filepath.Join(home, ".config", "tsconv", "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func setDefaults(d config.Config) {
	viper.SetDefault("history.path", d.History.Path)
	viper.SetDefault("history.limit", d.History.Limit)
	viper.SetDefault("history.recent", d.History.Recent)
	viper.SetDefault("toast.duration", d.Toast.Duration)
	viper.SetDefault("toast.result_duration", d.Toast.ResultDuration)
	viper.SetDefault("toast.fade", d.Toast.Fade)
	viper.SetDefault("button.label", d.Button.Label)
	viper.SetDefault("button.debounce", d.Button.Debounce)
	viper.SetDefault("auto_refresh", d.AutoRefresh)
	viper.SetDefault("auto_refresh_debounce", d.AutoRefreshDebounce)
	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("tracing.enabled", d.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", d.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", d.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

func initLogging(cmd *cobra.Command, _ []string) error {
	if os.Getenv("TSCONV_DEBUG") == "" && !debugFlag {
		return nil
	}

	logPath := os.Getenv("TSCONV_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := openLog(cmd, logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	cobra.OnFinalize(cleanup)

	debugFlag = true
	log.Info(log.CatConfig, "tsconv starting", "command", cmd.Name(), "config", viper.ConfigFileUsed())
	return nil
}

// openLog routes Bubble Tea's own diagnostics into the same file when the
// TUI is about to run; subcommands only need our logger.
func openLog(cmd *cobra.Command, path string) (func(), error) {
	if cmd == rootCmd {
		return log.InitWithTeaLog(path, "tsconv")
	}
	return log.Init(path)
}

func runApp(cmd *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	rt, err := openRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	notifier := toaster.NewNotifier()
	defer notifier.Close()

	bus := extension.NewBus()
	defer bus.Close()
	background := extension.NewBackground(bus)
	background.Install()

	pipeline := rt.Pipeline(notifier, extension.WithClipboard(clipboard.System{}))
	page := extension.NewPage(bus, pipeline)

	ctx, cancel := context.WithCancel(cmd.Context())
	listening := page.Listen(ctx)
	defer func() {
		cancel()
		<-listening
	}()

	var w *watcher.Watcher
	if cfg.AutoRefresh && rt.db != nil {
		w, err = watcher.New(watcher.Config{DBPath: rt.db.Path(), DebounceDur: cfg.AutoRefreshDebounce})
		if err != nil {
			log.ErrorErr(log.CatWatcher, "Auto refresh disabled", err)
		} else if err := w.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "Auto refresh disabled", err)
			_ = w.Stop()
			w = nil
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	zone.NewGlobal()
	model := app.New(app.Services{
		Config:     cfg,
		Store:      rt.store,
		Notifier:   notifier,
		Background: background,
		Page:       page,
		Watcher:    w,
		Debug:      debugFlag,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
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
