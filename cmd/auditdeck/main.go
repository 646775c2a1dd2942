package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mmarks/auditdeck/internal/api"
	"github.com/mmarks/auditdeck/internal/config"
	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/mmarks/auditdeck/internal/log"
	"github.com/mmarks/auditdeck/internal/service"
	"github.com/mmarks/auditdeck/internal/store"
	"github.com/mmarks/auditdeck/internal/tui"
	"github.com/mmarks/auditdeck/internal/tui/components"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		serverURL   string
		statusRef   string
		follow      bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	flag.StringVar(&statusRef, "status", "", "print audit progress for a company (ID or name) instead of running the TUI")
	flag.BoolVar(&follow, "follow", false, "with -status, keep polling until the audit finishes")
	flag.Parse()

	if showVersion {
		fmt.Printf("auditdeck %s\n", Version)
		return
	}

	if err := run(serverURL, statusRef, follow); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(serverURL, statusRef string, follow bool) error {
	// Optional .env for local development; absence is fine
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting auditdeck", "version", Version, "server", cfg.Server.URL)

	client := api.NewClient(cfg.Server.URL, logger)

	st, err := store.New(cfg.Cache.Dir, client.BaseURL())
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer st.Close()

	companySvc := service.NewCompanyService(client, st, logger)
	auditSvc := service.NewAuditService(client, st, logger)
	ownershipSvc := service.NewOwnershipService(client, st, logger)
	chatSvc := service.NewChatService(client, logger)

	pollInterval := time.Duration(cfg.UI.PollIntervalMS) * time.Millisecond

	if statusRef != "" {
		return printStatus(companySvc, auditSvc, statusRef, follow, pollInterval, cfg.UI.ShowPercent)
	}

	model := tui.NewModel(companySvc, auditSvc, ownershipSvc, chatSvc, pollInterval, cfg.UI.ShowPercent, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// printStatus renders audit progress for a company straight to stdout,
// sized to the terminal, without entering the TUI.
func printStatus(companySvc *service.CompanyService, auditSvc *service.AuditService, ref string, follow bool, interval time.Duration, showPercent bool) error {
	ctx := context.Background()

	company, err := companySvc.Resolve(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to resolve company %q: %w", ref, err)
	}

	auditID, ok := auditSvc.LatestAuditID(company.ID)
	if !ok {
		return fmt.Errorf("no known audit for %s", company.Name)
	}

	width := 40
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w - 10
	}

	render := func(p domain.Progress) {
		bar := components.ProgressBar{
			Value:       p.Percent,
			CurrentStep: p.CurrentStep,
			TotalSteps:  p.TotalSteps,
			StepName:    p.StepName,
			ShowPercent: showPercent,
			Width:       width,
			Variant:     components.VariantAudit,
		}
		fmt.Printf("\r%s  %s", bar.View(), p.Status.Label())
	}

	if !follow {
		progress, err := auditSvc.Progress(ctx, auditID)
		if err != nil {
			return fmt.Errorf("failed to fetch progress: %v", api.Message(err))
		}
		render(*progress)
		fmt.Println()
		return nil
	}

	err = auditSvc.Watch(ctx, auditID, interval, render)
	fmt.Println()
	if err != nil {
		return fmt.Errorf("watch failed: %v", api.Message(err))
	}
	return nil
}
