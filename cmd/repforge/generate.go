package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/repforge/repforge/internal/agents"
	"github.com/repforge/repforge/internal/llm"
	"github.com/repforge/repforge/internal/llm/providers"
	"github.com/repforge/repforge/internal/orchestrator"
	"github.com/repforge/repforge/internal/program"
	"github.com/repforge/repforge/internal/store"
	"github.com/repforge/repforge/internal/types"
)

var (
	intakePath    string
	requestedByID string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a training program from an intake file",
	Long: `Generate runs the full pipeline for one intake request: profile
analysis, program architecture, exercise selection, plan validation, and
persistence. The intake file is YAML matching the intake request shape.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&intakePath, "intake", "i", "", "Path to intake YAML file (required)")
	generateCmd.Flags().StringVar(&requestedByID, "requested-by", "", "UUID of the coach requesting the program")
	generateCmd.MarkFlagRequired("intake")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	intake, err := readIntake(intakePath)
	if err != nil {
		return err
	}

	var requestedBy types.ID
	if requestedByID != "" {
		if requestedBy, err = types.ParseID(requestedByID); err != nil {
			return fmt.Errorf("invalid --requested-by: %w", err)
		}
	}

	db, err := store.OpenWithConfig(cfg.Database.StoreConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := providers.New(cfg.Provider.ProviderSettings())
	if err != nil {
		return err
	}

	clientOpts := []llm.ClientOption{
		llm.WithRetryConfig(cfg.Retry.RetrySettings()),
	}
	if cfg.Provider.RateLimit > 0 {
		clientOpts = append(clientOpts, llm.WithRateLimit(cfg.Provider.RateLimit, cfg.Provider.RateBurst))
	}
	client := llm.NewClient(provider, clientOpts...)

	agentCfg := agents.Config{
		Client:          client,
		Capabilities:    providers.Capabilities(cfg.Provider.Name),
		MaxOutputTokens: cfg.Pipeline.MaxOutputTokens,
	}

	orch := orchestrator.New(agentCfg, store.NewCatalogDAO(db), store.NewProgramDAO(db),
		orchestrator.WithMaxPlanRetries(cfg.Pipeline.MaxPlanRetries),
		orchestrator.WithTimeout(cfg.Pipeline.Timeout),
		orchestrator.WithContextTokens(cfg.Pipeline.ContextTokens),
		orchestrator.WithSessionConcurrency(cfg.Pipeline.SessionConcurrency),
	)

	result, err := orch.Generate(cmd.Context(), intake, requestedBy)
	if err != nil {
		return err
	}

	printResult(cmd, result)
	return nil
}

func readIntake(path string) (program.IntakeRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return program.IntakeRequest{}, fmt.Errorf("failed to read intake file: %w", err)
	}

	var intake program.IntakeRequest
	if err := yaml.Unmarshal(raw, &intake); err != nil {
		return program.IntakeRequest{}, fmt.Errorf("failed to parse intake file: %w", err)
	}
	return intake, nil
}

func printResult(cmd *cobra.Command, result *program.OrchestrationResult) {
	cmd.Printf("Program %s generated in %s\n", result.ProgramID, result.Duration.Round(10*time.Millisecond))
	if result.PipelineRetries > 0 {
		cmd.Printf("Pipeline retries: %d\n", result.PipelineRetries)
	}

	verdict := "PASS"
	if !result.Validation.Pass {
		verdict = "FAIL"
	}
	cmd.Printf("Validation: %s\n", verdict)
	if result.Validation.Summary != "" {
		cmd.Printf("  %s\n", result.Validation.Summary)
	}
	for _, issue := range result.Validation.Issues {
		cmd.Printf("  [%s] %s: %s\n", issue.Severity, issue.Category, issue.Message)
	}

	cmd.Printf("Token usage: %d total\n", result.TotalUsage.Total())
	for _, stage := range result.UsageByStage {
		cmd.Printf("  %-20s in=%d out=%d\n", stage.Stage, stage.Usage.InputTokens, stage.Usage.OutputTokens)
	}
}
