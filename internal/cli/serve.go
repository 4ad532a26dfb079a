package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/api"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
)

type serveOptions struct {
	addr      string
	redisAddr string
	mongoURI  string
	mongoDB   string
	storeDir  string
	noCache   bool
	timeout   time.Duration
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the word-cloud HTTP API",
		Long: `Run the word-cloud HTTP API.

Layouts are cached in Redis when --redis is given (shared between
instances), otherwise in the local cache directory. Computed layouts are
stored in MongoDB with --mongo-uri, in a directory with --store-dir, or in
memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for the shared cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string for layout storage")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", store.DefaultDatabase, "MongoDB database name")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "store layouts as files in this directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", api.DefaultLayoutTimeout, "maximum time per layout request")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	cch, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := api.New(runner, st, c.Logger)
	srv.LayoutTimeout = opts.timeout

	printSuccess("Serving word-cloud API")
	printKeyValue("address", opts.addr)
	printKeyValue("cache", describeCache(opts))
	printKeyValue("store", describeStore(opts))
	printNewline()

	return srv.ListenAndServe(ctx, opts.addr)
}

func (c *CLI) serveCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	if opts.noCache || opts.redisAddr == "" {
		return newCache(opts.noCache)
	}
	var cch cache.Cache
	err := c.withSpinner(ctx, "Connecting to Redis...", func() error {
		var err error
		cch, err = cache.NewRedisCache(ctx, opts.redisAddr)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return cch, nil
}

func (c *CLI) serveStore(ctx context.Context, opts serveOptions) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		var st store.Store
		err := c.withSpinner(ctx, "Connecting to MongoDB...", func() error {
			var err error
			st, err = store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
			return err
		})
		return st, err
	case opts.storeDir != "":
		return store.NewFileStore(opts.storeDir)
	}
	return store.NewMemoryStore(), nil
}

// withSpinner runs fn behind a spinner when stderr is a terminal.
func (c *CLI) withSpinner(ctx context.Context, msg string, fn func() error) error {
	if !isTerminal(os.Stderr) {
		c.Logger.Info(msg)
		return fn()
	}
	s := newSpinnerWithContext(ctx, msg)
	s.Start()
	if err := fn(); err != nil {
		s.StopWithError(msg + " failed")
		return err
	}
	s.Stop()
	return nil
}

func describeCache(opts serveOptions) string {
	switch {
	case opts.noCache:
		return "disabled"
	case opts.redisAddr != "":
		return "redis " + opts.redisAddr
	}
	dir, err := cacheDir()
	if err != nil {
		return "disabled"
	}
	return "file " + dir
}

func describeStore(opts serveOptions) string {
	switch {
	case opts.mongoURI != "":
		return "mongodb " + opts.mongoDB
	case opts.storeDir != "":
		return "file " + opts.storeDir
	}
	return "memory"
}
