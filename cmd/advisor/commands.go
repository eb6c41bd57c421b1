package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"insurance-advisor/internal/api"
	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/faqindex"
	"insurance-advisor/internal/logger"
	"insurance-advisor/internal/risk"
	"insurance-advisor/internal/tui"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive advisor",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log to a file so the TUI owns the terminal.
			log, err := logger.NewFile(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			advisor, err := loadAdvisor(log)
			if err != nil {
				return err
			}
			header := fmt.Sprintf("%d products, %d FAQ entries", len(advisor.Products()), advisor.FAQCount())
			_, err = tea.NewProgram(tui.New(advisor, header), tea.WithAltScreen()).Run()
			return err
		},
	}
}

func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the advisor over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(cfg.Log.Level); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()
			appLogger := logger.Get()

			advisor, err := loadAdvisor(appLogger)
			if err != nil {
				appLogger.Error("Advisor data unavailable", zap.Error(err))
				return err
			}

			if listen == "" {
				listen = cfg.Server.Listen
			}
			app := api.SetupRouter(advisor, appLogger)

			errCh := make(chan error, 1)
			go func() {
				appLogger.Info("Server starting", zap.String("address", listen))
				errCh <- app.Listen(listen)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			appLogger.Info("Shutting down server")
			return app.Shutdown()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides server.listen)")
	return cmd
}

func newIndexCmd() *cobra.Command {
	index := &cobra.Command{
		Use:   "index",
		Short: "Manage the FAQ index",
	}
	var src, out string
	build := &cobra.Command{
		Use:   "build",
		Short: "Fit the vectorizer on the FAQ source and write the index bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if src == "" {
				src = cfg.Data.FAQSource
			}
			if out == "" {
				out = cfg.Data.FAQIndex
			}
			entries, err := faqindex.LoadSource(src)
			if err != nil {
				return err
			}
			b, err := faqindex.Build(entries)
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}
			if err := b.Save(out); err != nil {
				return fmt.Errorf("save index: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d questions over %d terms into %s\n", len(b.Questions), len(b.Vectorizer.Terms), out)
			return nil
		},
	}
	build.Flags().StringVar(&src, "faqs", "", "FAQ source YAML (overrides data.faq_source)")
	build.Flags().StringVar(&out, "out", "", "Output bundle path (overrides data.faq_index)")
	index.AddCommand(build)
	return index
}

func newQuoteCmd() *cobra.Command {
	var (
		age       int
		situation string
		smoker    bool
		coverage  float64
		duration  float64
	)
	cmd := &cobra.Command{
		Use:   "quote <product>",
		Short: "Compute a premium estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sit, err := domain.ParseSituation(situation)
			if err != nil {
				return err
			}
			for name, v := range map[string]float64{"coverage": coverage, "duration": duration} {
				if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("invalid --%s %v", name, v)
				}
			}
			advisor, err := loadAdvisor(logger.Get())
			if err != nil {
				return err
			}
			q, err := advisor.Quote(args[0], domain.Applicant{
				Age: age, Situation: sit, Smoker: smoker, CoverageAmount: coverage, Duration: duration,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, q)
		},
	}
	cmd.Flags().IntVar(&age, "age", 35, "Applicant age")
	cmd.Flags().StringVar(&situation, "situation", "single", "single, married or family")
	cmd.Flags().BoolVar(&smoker, "smoker", false, "Applicant smokes")
	cmd.Flags().Float64Var(&coverage, "coverage", 100000, "Coverage amount (life insurance)")
	cmd.Flags().Float64Var(&duration, "duration", 20, "Duration in years (life insurance)")
	return cmd
}

func newRiskCmd() *cobra.Command {
	var a domain.Applicant
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score an applicant risk profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, risk.Analyze(a))
		},
	}
	cmd.Flags().IntVar(&a.Age, "age", 35, "Applicant age")
	cmd.Flags().BoolVar(&a.Smoker, "smoker", false, "Applicant smokes")
	cmd.Flags().StringVar(&a.Profession, "profession", "", "Applicant profession")
	cmd.Flags().BoolVar(&a.MedicalHistory, "medical", false, "Pre-existing medical conditions")
	cmd.Flags().BoolVar(&a.RiskActivities, "activities", false, "Practises high-risk activities")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
