package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"alfredweb/src/internal/api"
	"alfredweb/src/internal/domain"
	"alfredweb/src/internal/service/assets"
)

type Orchestrator struct {
	ctx *domain.Context
	// Out receives the startup banner and the shutdown notice.
	Out io.Writer
}

func CreateOrchestrator(ctx *domain.Context) *Orchestrator {
	return &Orchestrator{
		ctx: ctx,
		Out: os.Stdout,
	}
}

// Run serves until SIGINT, SIGTERM or cancellation of parent. A bind failure
// is returned before the banner is printed.
func (o *Orchestrator) Run(parent context.Context) error {
	cfg := o.ctx.Config
	log.Printf("Starting Alfred web gateway (Version: %s)...", cfg.Version)

	assets.RegisterMimeTypes()

	rootOK := assets.CheckRoot(cfg.RootDir)
	if rootOK {
		log.Printf("Serving web assets from: %s", cfg.RootDir)
	} else {
		log.Printf("WARNING: web asset directory not found at %s", cfg.RootDir)
	}

	server := api.Create(o.ctx)
	ln, err := server.Listen()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	o.printBanner()

	if cfg.WatchAssets && rootOK {
		watcher, err := assets.NewWatcher(cfg.RootDir, nil)
		if err != nil {
			log.Printf("Asset watcher disabled: %v", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	if err := server.Close(); err != nil {
		log.Printf("Error closing listener: %v", err)
	}
	<-errCh
	fmt.Fprintln(o.Out, "\nShutting down...")
	return nil
}

func (o *Orchestrator) printBanner() {
	base := o.ctx.Config.BaseURL()
	bold := color.New(color.FgGreen, color.Bold)
	note := color.New(color.FgYellow)

	bold.Fprintf(o.Out, "Starting server on %s\n", base)
	fmt.Fprintf(o.Out, "Web interface: %s%s%s\n", base, domain.WebPrefix, domain.EntryPage)
	note.Fprintln(o.Out, "Note: API calls won't work - this only serves static files")
	note.Fprintf(o.Out, "For full functionality, run: %s\n", domain.BackendCommand)
	fmt.Fprintln(o.Out)
}
