package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/erazemk/omara/internal/api"
	"github.com/erazemk/omara/internal/db"
	"github.com/erazemk/omara/internal/metrics"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/stylist"
	"github.com/erazemk/omara/internal/wardrobe"
)

const usage = `Usage: omara [flags]

Flags:
  -d, -db <path>          SQLite database path (default: omara.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        username created on first run (default: admin)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -laundry <duration> how long worn items stay in laundry (default: 48h)
      -sweep <duration>   how often laundry is checked (default: 1h)
  -v, -verbose            log debug messages
  -h, -help               show this help and exit

Environment (also read from ./.env):
  GEMINI_API_KEY          Gemini API key (API_KEY is also accepted)

Metrics are served at /metrics.
`

type options struct {
	dbPath   string
	addr     string
	user     string
	logPath  string
	verbose  bool
	wardrobe wardrobe.Config
}

// parseFlags parses command-line arguments.
func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("omara", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { fmt.Fprint(output, usage) }

	opts := options{wardrobe: wardrobe.DefaultConfig()}
	fs.StringVar(&opts.dbPath, "db", "omara.sqlite3", "")
	fs.StringVar(&opts.dbPath, "d", "omara.sqlite3", "")
	fs.StringVar(&opts.addr, "addr", ":8080", "")
	fs.StringVar(&opts.addr, "a", ":8080", "")
	fs.StringVar(&opts.user, "user", "admin", "")
	fs.StringVar(&opts.user, "u", "admin", "")
	fs.StringVar(&opts.logPath, "log", "", "")
	fs.StringVar(&opts.logPath, "l", "", "")
	fs.BoolVar(&opts.verbose, "verbose", false, "")
	fs.BoolVar(&opts.verbose, "v", false, "")
	fs.DurationVar(&opts.wardrobe.LaundryDuration, "laundry", wardrobe.DefaultLaundryDuration, "")
	fs.DurationVar(&opts.wardrobe.SweepInterval, "sweep", wardrobe.DefaultSweepInterval, "")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if opts.wardrobe.LaundryDuration <= 0 || opts.wardrobe.SweepInterval <= 0 {
		return options{}, errors.New("durations must be positive")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	closeLog, err := setupLogger(opts.logPath, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(opts); err != nil {
		slog.Error("fatal", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(opts options) error {
	// A .env file next to the binary may carry the API key.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env")
	}

	key, err := apiKey(os.Getenv)
	if err != nil {
		return err
	}

	if _, err := os.Stat(opts.dbPath); os.IsNotExist(err) {
		password, err := initDatabase(opts.dbPath, opts.user)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		printInitResult(opts.dbPath, opts.user, password)
		fmt.Println()
	}

	database, err := db.Open(opts.dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}
	slog.Info("database ready", "path", opts.dbPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		return fmt.Errorf("loading JWT secret: %w", err)
	}

	gemini, err := stylist.NewGemini(ctx, key)
	if err != nil {
		return err
	}

	profile, err := store.OpenCell(ctx, database, store.KeyUserProfile, model.DefaultProfile())
	if err != nil {
		return fmt.Errorf("opening profile: %w", err)
	}

	manager, err := wardrobe.NewManager(ctx, database, opts.wardrobe, nil)
	if err != nil {
		return err
	}
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("starting laundry sweeper: %w", err)
	}
	defer manager.Stop()

	router := api.NewRouter(api.Deps{
		DB:        database,
		JWTSecret: jwtSecret,
		Wardrobe:  manager,
		Profile:   profile,
		Stylist:   gemini,
	})

	m := metrics.New(manager)
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	mux.Handle("/", router)

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           api.LoggingMiddleware(m.Middleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Try-on generation can take a while.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", opts.addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}
