package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/server"
	"github.com/nao1215/mseo/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [site-file]",
		Short: "Serve robots.txt, sitemap.xml and the SEO API over HTTP",
		Long: `Serve renders a site file in memory and serves it over HTTP:

  /robots.txt          robots rules
  /sitemap.xml         XML sitemap
  /api/seo/sitemap     sitemap entries as JSON
  /api/seo/schemas     structured data records as JSON
  /api/seo/head?path=  head tags of a page as JSON
  /healthz             liveness probe
  /metrics             Prometheus metrics

With --static, other paths are served from a directory and HTML pages get
their head tags injected on the fly.

Examples:
  # Serve .mseo.yaml on :8080
  mseo serve

  # Serve a built site with injected heads and reload on change
  mseo serve --static public --watch -l 127.0.0.1:3000`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Site file path (default: .mseo.yaml in current, XDG config or home directory)")
	cmd.Flags().StringP("listen", "l", config.DefaultListenAddr,
		"Address to listen on")
	cmd.Flags().StringP("static", "s", "",
		"Directory of static files to serve with injected heads")
	cmd.Flags().BoolP("watch", "w", false,
		"Reload the site file when it changes")
	cmd.Flags().Duration("debounce", config.DefaultWatchDebounce,
		"Quiet period before a change triggers a reload")
	cmd.Flags().Duration("shutdown-timeout", config.DefaultShutdownTimeout,
		"Time allowed for in-flight requests on shutdown")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, args []string) error {
	opts := config.NewOptions()
	opts.Verbose = getVerboseFlag(cmd)

	var err error
	if opts.ConfigFiles, err = resolveSiteFiles(cmd, args); err != nil {
		return err
	}
	if opts.ListenAddr, err = cmd.Flags().GetString("listen"); err != nil {
		return err
	}
	if opts.Watch, err = cmd.Flags().GetBool("watch"); err != nil {
		return err
	}
	if opts.WatchDebounce, err = cmd.Flags().GetDuration("debounce"); err != nil {
		return err
	}
	if opts.ShutdownTimeout, err = cmd.Flags().GetDuration("shutdown-timeout"); err != nil {
		return err
	}
	staticDir, err := cmd.Flags().GetString("static")
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), opts.Verbose)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	srv := server.New(server.WithLogger(logger), server.WithStaticDir(staticDir))
	source := opts.ConfigFiles[0]
	if err := loadSite(ctx, srv, source); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "serving %s on %s\n", source, opts.ListenAddr)
	return serve(ctx, srv, opts, logger)
}

// loadSite reads source and swaps it into srv.
func loadSite(ctx context.Context, srv *server.Server, source string) error {
	site, err := config.LoadFile(source)
	if err != nil {
		return fmt.Errorf("failed to load site file %s: %w", source, err)
	}
	if _, err := srv.Load(ctx, site, source); err != nil {
		return fmt.Errorf("failed to load site file %s: %w", source, err)
	}
	return nil
}

// serve runs the HTTP server and, in watch mode, the reload loop.
func serve(ctx context.Context, srv *server.Server, opts *config.Options, logger *slog.Logger) error {
	var w *watch.Watcher
	if opts.Watch {
		source := opts.ConfigFiles[0]
		var err error
		w, err = watch.New(watchedFiles([]string{source}, logger),
			func(ctx context.Context, _ []string) error {
				// The previous site stays in service when the reload fails.
				return loadSite(ctx, srv, source)
			},
			watch.WithDebounce(opts.WatchDebounce),
			watch.WithLogger(logger),
		)
		if err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, opts.ListenAddr, opts.ShutdownTimeout)
	})
	if w != nil {
		g.Go(func() error {
			return w.Run(ctx)
		})
	}
	return g.Wait()
}
