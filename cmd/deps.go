package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/gateway"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logging"
	"github.com/abhisek/lingua/internal/store"
)

// deps holds what every lesson host needs.
type deps struct {
	store   *store.Store
	catalog *catalog.Catalog
	gateway *gateway.Gateway
	orch    *lesson.Orchestrator
	llmCfg  llm.Config

	// configured is false when no usable LLM credentials were found. The
	// lesson still runs; every call fails with a banner.
	configured bool
}

// buildDeps opens the store, loads the catalog and wires the gateway and
// orchestrator.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()

	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	eventRepo := st.EventRepo()

	d := &deps{store: st, catalog: cat, configured: true}

	provider, cfg, err := llm.NewProviderFromEnv(ctx, eventRepo)
	d.llmCfg = cfg
	if err != nil {
		d.configured = false
		provider = nil
		logging.Logger().WithError(err).Warn("LLM provider not configured")
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Lesson sections will show an error banner.")
	}

	d.gateway = gateway.New(provider, gateway.Config{
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.Timeout,
		Vendor:    cfg.DisplayName(),
	})
	d.orch = lesson.New(cat, d.gateway, eventRepo)
	return d, nil
}

func (d *deps) Close() error {
	return d.store.Close()
}

// modelLabel is shown in headers and banners.
func (d *deps) modelLabel() string {
	if !d.configured {
		return ""
	}
	return d.llmCfg.ModelLabel()
}

// loadCatalog returns the built-in catalog, extended by --catalog or
// LINGUA_CATALOG when set.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path := flagOrEnv(cmd, "catalog", "LINGUA_CATALOG")
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}
