package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/portmaint/portmaint/pkg/cache"
	"github.com/portmaint/portmaint/pkg/maint"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	portdir string // tree root override
	listen  string // listen address override
}

// serveCommand creates the serve command exposing the maintainer reports
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve maintainer reports over HTTP",
		Long: `Serve maintainer reports over HTTP.

Endpoints:
  GET /healthz            liveness probe
  GET /v1/report/proxies  proxy-maintained packages grouped by contact
  GET /v1/report/orphans  orphaned packages

Reports are computed from the configured tree and cached; append
?refresh=1 to force a fresh scan.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.portdir, "portdir", "p", "", "portage tree root (default from config)")
	cmd.Flags().StringVar(&opts.listen, "listen", "", "listen address (default from config)")

	return cmd
}

// reportServer handles the HTTP report endpoints.
type reportServer struct {
	cli   *CLI
	store cache.Cache
	root  string
}

// envelope wraps a report payload with an identifier and timestamp so
// clients can correlate and deduplicate downloaded reports.
type envelope struct {
	ID          string `json:"id"`
	GeneratedAt string `json:"generated_at"`
	Tree        string `json:"tree"`
	Cached      bool   `json:"cached"`
	Report      any    `json:"report"`
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	store, err := c.newCache(ctx, false)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &reportServer{
		cli:   c,
		store: store,
		root:  c.portDir(opts.portdir),
	}

	listen := opts.listen
	if listen == "" {
		listen = c.Config.Serve.Listen
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(c.requestLogger)
	r.Get("/healthz", srv.handleHealth)
	r.Get("/v1/report/proxies", srv.handleProxies)
	r.Get("/v1/report/orphans", srv.handleOrphans)

	server := &http.Server{
		Addr:              listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shut down when the command context is cancelled (signal handling
	// lives in main).
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	c.Logger.Infof("Serving reports for %s on %s", srv.root, listen)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request through the CLI logger.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		c.Logger.Infof("%s %s %d (%s)", r.Method, r.URL.Path, ww.Status(),
			time.Since(start).Round(time.Millisecond))
	})
}

func (s *reportServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *reportServer) handleProxies(w http.ResponseWriter, r *http.Request) {
	report, cached, err := s.scan(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	groups, err := report.Groups(s.cli.Config.MaintPolicy())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeReport(w, groups, cached)
}

func (s *reportServer) handleOrphans(w http.ResponseWriter, r *http.Request) {
	report, cached, err := s.scan(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeReport(w, report.Orphans, cached)
}

func (s *reportServer) scan(r *http.Request) (*maint.TreeReport, bool, error) {
	refresh := r.URL.Query().Get("refresh") != ""
	return s.cli.loadTreeReport(r.Context(), s.store, s.root, refresh)
}

func (s *reportServer) writeReport(w http.ResponseWriter, report any, cached bool) {
	writeJSONResponse(w, http.StatusOK, envelope{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Tree:        s.root,
		Cached:      cached,
		Report:      report,
	})
}

func (s *reportServer) writeError(w http.ResponseWriter, err error) {
	s.cli.Logger.Errorf("report failed: %v", err)
	writeJSONResponse(w, http.StatusInternalServerError, map[string]string{
		"error": err.Error(),
	})
}

func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
