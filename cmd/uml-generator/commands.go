package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"uml-generator/internal/api"
	"uml-generator/internal/config"
	"uml-generator/internal/helpers"
	"uml-generator/internal/models"
	"uml-generator/internal/repositories"
	"uml-generator/internal/services"
	"uml-generator/internal/workflow"
)

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <stories-file>",
		Short: "Classify user stories into functional and non-functional requirements",
		Long:  "Read one user story per line, classify them with the AI service and save the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runClassify,
	}
}

func newGenerateCmd() *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "generate <usecase|class|sequence|deployment|functional> <stories-file>",
		Short: "Generate a UML diagram from user stories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0], args[1], render)
		},
	}
	cmd.Flags().BoolVarP(&render, "render", "r", false, "Render the diagram image through the PlantUML server")
	return cmd
}

func newAgileCmd() *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "agile",
		Short: "Generate the agile process diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), string(models.KindAgile), "", render)
		},
	}
	cmd.Flags().BoolVarP(&render, "render", "r", false, "Render the diagram image through the PlantUML server")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <file.puml>",
		Short: "Render an existing PlantUML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Image path (defaults to the input path with the format extension)")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the story board and diagram API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runInit(force bool) error {
	helpers.PrintTitle("Initializing UML Generator Configuration")

	if helpers.FileExists(configFile) && !force {
		helpers.PrintWarning("Configuration file already exists at %s", configFile)
		if !confirm("Do you want to overwrite it? (y/N): ") {
			helpers.PrintInfo("Configuration initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	cfg.Anthropic.APIKey = "your-anthropic-api-key-here"
	if err := config.SaveConfig(cfg, configFile); err != nil {
		return err
	}

	helpers.PrintSuccess("Configuration file created: %s", configFile)
	helpers.PrintInfo("Set your Anthropic API key in the file or in $%s", config.APIKeyEnv)
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	log := newLogger()

	helpers.PrintTitle("Classifying User Stories")
	helpers.PrintInfo("Input file: %s", inputFile)

	stories, err := helpers.ReadStories(inputFile)
	if err != nil {
		return err
	}
	helpers.PrintInfo("Stories: %d", len(stories))

	classifier := services.NewStoryClassifier(services.NewAIService(&cfg.Anthropic, log), log)
	state := workflow.NewState()
	buckets, err := state.Classify(cmd.Context(), classifier, stories)
	if err != nil {
		return err
	}

	for _, bucket := range models.Buckets {
		helpers.PrintBucket(bucket, buckets[bucket])
	}

	now := time.Now()
	report := models.ClassificationReport{
		Buckets:      buckets,
		ClassifiedAt: now,
		SourceFile:   inputFile,
	}
	if err := helpers.EnsureDir(cfg.Processing.OutputDir); err != nil {
		return err
	}
	path := helpers.GetOutputPath(cfg.Processing.OutputDir, helpers.GenerateOutputFilename("classification", "json", now))
	if err := helpers.SaveJSON(report, path); err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}

	helpers.PrintSuccess("Classification saved to %s", path)
	return nil
}

func runGenerate(ctx context.Context, rawKind, inputFile string, render bool) error {
	kind, err := models.ParseDiagramKind(rawKind)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(kind != models.KindAgile)
	if err != nil {
		return err
	}
	log := newLogger()

	helpers.PrintTitle("Generating %s Diagram", kind)

	var stories []string
	if inputFile != "" {
		helpers.PrintInfo("Input file: %s", inputFile)
		if stories, err = helpers.ReadStories(inputFile); err != nil {
			return err
		}
	}

	if render && !cfg.Renderer.Enabled {
		helpers.PrintWarning("Rendering is disabled in %s, only markup will be saved", configFile)
	}

	svc := newDiagramService(cfg, log)
	diagrams, err := svc.Generate(ctx, kind, stories)
	if err != nil {
		return err
	}

	for _, d := range diagrams {
		helpers.PrintMarkup(d.Markup)
		artifact, err := svc.Publish(ctx, d, render)
		if err != nil {
			return err
		}
		helpers.PrintSuccess("Markup saved to %s", artifact.MarkupPath)
		if artifact.ImagePath != "" {
			helpers.PrintSuccess("Image saved to %s", artifact.ImagePath)
		}
	}
	return nil
}

func runRender(ctx context.Context, src, dst string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	if !cfg.Renderer.Enabled {
		return fmt.Errorf("rendering is disabled in %s", configFile)
	}

	repo := repositories.NewPlantUMLRepository(&cfg.Renderer)
	if dst == "" {
		dst = helpers.ReplaceExt(src, repo.Format())
	}

	if err := repo.RenderFile(ctx, src, dst); err != nil {
		return err
	}
	helpers.PrintSuccess("Image saved to %s", dst)
	return nil
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	log := newLogger()

	ai := services.NewAIService(&cfg.Anthropic, log)
	handler := api.NewHandler(
		workflow.NewManager(),
		services.NewStoryClassifier(ai, log),
		newDiagramService(cfg, log),
		log,
	)

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadConfig reads the config file. needsModel is set by commands that call
// the Anthropic API.
func loadConfig(needsModel bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if needsModel {
		if err := cfg.ValidateAnthropic(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return cfg, nil
}

// newDiagramService wires the AI and renderer clients. A disabled renderer
// stays a nil interface so Publish skips rendering.
func newDiagramService(cfg *config.Config, log logrus.FieldLogger) *services.DiagramService {
	var renderer services.Renderer
	if cfg.Renderer.Enabled {
		renderer = repositories.NewPlantUMLRepository(&cfg.Renderer)
	}
	return services.NewDiagramService(services.NewAIService(&cfg.Anthropic, log), renderer, cfg.Processing.OutputDir, log)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	response := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return response == "y" || response == "yes"
}
