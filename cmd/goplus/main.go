package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/layer-3/goplus"
	"github.com/layer-3/goplus/internal/config"
	"github.com/layer-3/goplus/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    config.Config
	logger *zap.Logger

	baseURLFlag string
)

var rootCmd = &cobra.Command{
	Use:           "goplus",
	Short:         "GoPlus security API client and gateway",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if baseURLFlag != "" {
			cfg.BaseURL = baseURLFlag
		}

		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "override GOPLUS_BASE_URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newSession builds a session from the loaded configuration.
func newSession(extra ...goplus.Option) *goplus.Session {
	opts := []goplus.Option{
		goplus.WithBaseURL(cfg.BaseURL),
		goplus.WithLogger(logger),
		goplus.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
	if cfg.HasKeys() {
		opts = append(opts, goplus.WithKeys(cfg.AppKey, cfg.AppSecret))
	}
	return goplus.NewSession(append(opts, extra...)...)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
