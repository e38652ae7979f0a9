package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hingecut/pkg/cache"
	"github.com/matzehuels/hingecut/pkg/config"
	"github.com/matzehuels/hingecut/pkg/hinge"
	"github.com/matzehuels/hingecut/pkg/observability"
	"github.com/matzehuels/hingecut/pkg/pipeline"
	"github.com/matzehuels/hingecut/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	presetPath    string
	redisAddr     string
	redisPassword string
	redisDB       int
	cachePrefix   string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: server.DefaultAddr, cachePrefix: appName}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP pattern service",
		Long: `Run the HTTP pattern service.

Routes:
  GET  /healthz
  GET  /api/v1/pattern?width=100&height=50&cut_length=30&format=svg
  POST /api/v1/pattern   (JSON body with the same fields)

Rendered artifacts are cached in Redis when --redis-addr is set. The Redis
password is read from --redis-password or HINGECUT_REDIS_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.redisPassword == "" {
				opts.redisPassword = os.Getenv("HINGECUT_REDIS_PASSWORD")
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.presetPath, "config", "c", "", "TOML preset whose [limits] apply to every request")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the artifact cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", opts.cachePrefix, "namespace for cache keys")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	limits := hinge.DefaultConfig()
	if opts.presetPath != "" {
		p, err := config.Load(opts.presetPath)
		if err != nil {
			return err
		}
		limits = p.Config().WithDefaults()
	}

	store, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, keyPrefix(opts.cachePrefix)), c.Logger)
	defer runner.Close()

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	printSuccess("Serving on %s", StyleLink.Render(listenURL(opts.addr)))
	printKeyValue("cache", cacheLabel(opts))
	printKeyValue("min pitch", fmt.Sprintf("%g mm", limits.MinPitch))

	srv := server.New(runner, server.WithLogger(c.Logger), server.WithLimits(limits))
	return srv.ListenAndServe(ctx, opts.addr)
}

// serverCache connects to Redis when configured; otherwise the service runs
// without a cache.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.redisAddr == "" {
		return cache.NewNullCache(), nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:        opts.redisAddr,
		Password:    opts.redisPassword,
		DB:          opts.redisDB,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", opts.redisAddr, err)
	}
	c.Logger.Info("connected to redis", "addr", opts.redisAddr, "db", opts.redisDB)
	return rc, nil
}

// keyPrefix terminates a non-empty prefix with the Redis namespace separator.
func keyPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return strings.TrimSuffix(prefix, ":") + ":"
}

func cacheLabel(opts serveOpts) string {
	if opts.redisAddr == "" {
		return "none"
	}
	return fmt.Sprintf("redis://%s/%d (prefix %q)", opts.redisAddr, opts.redisDB, opts.cachePrefix)
}

// listenURL turns a listen address such as ":8080" into a clickable URL.
func listenURL(addr string) string {
	if addr == "" {
		addr = server.DefaultAddr
	}
	if addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
