package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kassslll/creator-studio/backend/config"
	"github.com/kassslll/creator-studio/backend/controllers"
	"github.com/kassslll/creator-studio/backend/llm"
	"github.com/kassslll/creator-studio/backend/routes"
	"github.com/kassslll/creator-studio/backend/services"
	"github.com/kassslll/creator-studio/backend/store"
	"github.com/kassslll/creator-studio/backend/utils"
	"github.com/kassslll/creator-studio/backend/vectordb"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "creator",
	Short:         "Educational content creation backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default)",
	RunE:  runServe,
}

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Work with retrieval corpus files",
}

var corpusValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse a corpus YAML file and report its documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := vectordb.LoadCorpus(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d documents\n", args[0], len(docs))
		return nil
	},
}

func init() {
	corpusCmd.AddCommand(corpusValidateCmd)
	rootCmd.AddCommand(serveCmd, corpusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	// Initialize storage
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProvider(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init LLM provider: %w", err)
	}

	retriever, err := vectordb.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init retriever: %w", err)
	}

	discovery := services.NewDiscoveryService(retriever, provider, logger)
	generation := services.NewGenerationService(provider, logger)
	modification := services.NewModificationService(provider, logger)

	app := routes.NewApp(logger, routes.Controllers{
		Discovery:  controllers.NewDiscoveryController(discovery, logger, cfg.RevealInterval, cfg.ProgressInterval),
		Content:    controllers.NewContentController(st, generation, modification, logger, cfg.ProgressInterval),
		VectorDB:   controllers.NewVectorDBController(retriever),
		Curriculum: controllers.NewCurriculumController(st),
	})

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = app.ShutdownWithContext(context.Background())
	}()

	logger.Info("server starting", "port", cfg.ServerPort, "provider", provider.ModelID(), "store", cfg.StoreDriver)
	return app.Listen(":" + cfg.ServerPort)
}
