package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/offwiki/internal/api"
)

// shutdownTimeout bounds graceful shutdown of the API server.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <archive>",
		Short: "Serve an archive as a JSON API",
		Long: `Serve exposes search, article documents and archive metadata over HTTP:

  GET /health
  GET /api/info
  GET /api/search?q=<query>&limit=<n>
  GET /api/articles/<path>?width=<cols>
  GET /api/random`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeArchive,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr string) error {
	logger := loggerFromContext(ctx)

	a, err := openArchive(path)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr: addr,
		Handler: api.NewServer(a,
			api.WithBuilder(c.builder(0)),
			api.WithMaxResults(c.Config.MaxResults),
			api.WithLogger(logger),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("serving", "archive", path, "addr", "http://"+addr)

	select {
	case err := <-errc:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
