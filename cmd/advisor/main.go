package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"insurance-advisor/internal/config"
	"insurance-advisor/internal/service"
)

var (
	cfgPath string
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Insurance FAQ assistant, premium calculator and risk analyzer",
	Long: `advisor answers insurance questions from a pre-built FAQ index and
estimates premiums and risk scores from the product knowledge base.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		var err error
		if cfgPath == "" {
			cfg, _, err = config.LoadDefault()
		} else {
			cfg, err = config.Load(cfgPath)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default ./config.yaml, then ~/.config/insurance-advisor/config.yaml)")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newQuoteCmd())
	rootCmd.AddCommand(newRiskCmd())
}

func loaderConfig() service.LoaderConfig {
	return service.LoaderConfig{
		KnowledgeBasePath: cfg.Data.KnowledgeBase,
		FAQIndexPath:      cfg.Data.FAQIndex,
		Options: service.Options{
			Threshold: cfg.Matcher.Threshold,
			Related:   cfg.Matcher.Related,
		},
	}
}

// loadAdvisor loads the stores, pointing at "index build" when the FAQ
// index has not been built yet.
func loadAdvisor(log *zap.Logger) (*service.Advisor, error) {
	advisor, err := service.NewLoader(loaderConfig(), log).Advisor()
	if err != nil && errors.Is(err, os.ErrNotExist) {
		if _, statErr := os.Stat(cfg.Data.FAQIndex); errors.Is(statErr, os.ErrNotExist) {
			return nil, fmt.Errorf("%w\nthe FAQ index has not been built yet; run `advisor index build` first", err)
		}
	}
	return advisor, err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
