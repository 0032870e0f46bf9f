package cli

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bubblechart/internal/server"
	"github.com/matzehuels/bubblechart/pkg/cache"
	"github.com/matzehuels/bubblechart/pkg/errors"
	"github.com/matzehuels/bubblechart/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	redisAddr     string // empty disables the shared cache
	redisPassword string
	redisDB       int
	cacheTTL      time.Duration
	timeout       time.Duration
	maxBody       int64
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     server.DefaultAddr,
		cacheTTL: cache.TTLArtifact,
		timeout:  server.DefaultRequestTimeout,
		maxBody:  server.DefaultMaxBodyBytes,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the HTTP render API.

Endpoints:
  GET  /healthz
  GET  /api/v1/visualizations
  POST /api/v1/visualizations/{id}/render?format=svg|png|json

With --redis-addr rendered artifacts are shared between replicas through Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			backend, label := cache.Cache(cache.NewNullCache()), "disabled"
			if opts.redisAddr != "" {
				rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
					Addr:     opts.redisAddr,
					Password: opts.redisPassword,
					DB:       opts.redisDB,
				})
				if err != nil {
					return errors.Wrap(errors.ErrCodeCacheBackend, err, "cache backend unavailable at %s", opts.redisAddr)
				}
				backend, label = rc, "redis "+opts.redisAddr
			}

			runner := pipeline.NewRunner(backend, nil, nil, c.Logger)
			runner.TTL = opts.cacheTTL
			defer runner.Close()

			srv := server.New(runner, c.Logger,
				server.WithTimeout(opts.timeout),
				server.WithMaxBodyBytes(opts.maxBody))

			printSuccess(w, "Serving %s", appName)
			printKeyValue(w, "Address", opts.addr)
			printKeyValue(w, "Cache", label)
			printKeyValue(w, "Cache TTL", opts.cacheTTL.String())
			printKeyValue(w, "Timeout", opts.timeout.String())
			printKeyValue(w, "Max body", humanize.IBytes(uint64(opts.maxBody)))

			return srv.ListenAndServe(ctx, opts.addr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", opts.addr, "listen address")
	f.StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the shared artifact cache (host:port)")
	f.StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	f.IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	f.DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "artifact cache time-to-live")
	f.DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request render timeout")
	f.Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum request body size in bytes")

	return cmd
}
