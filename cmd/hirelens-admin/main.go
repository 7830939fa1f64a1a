package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/hirelens/hirelens/config"
	"github.com/hirelens/hirelens/internal/ats"
	"github.com/hirelens/hirelens/internal/bootstrap"
	"github.com/hirelens/hirelens/internal/data"
	"github.com/hirelens/hirelens/internal/devseed"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/fetch"
	"github.com/hirelens/hirelens/internal/probe"
	"github.com/hirelens/hirelens/internal/service"
	"github.com/hirelens/hirelens/internal/util"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const (
	defaultMigrationTimeout = 5 * time.Minute
	defaultCommandTimeout   = 2 * time.Minute
)

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrations,
		},
		"db-reset": {
			name:        "db-reset",
			description: "Drop the database schema, run migrations, and optionally seed data",
			run:         runDBReset,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development data",
			run:         runDBSeed,
		},
		"seed-add": {
			name:        "seed-add",
			description: "Register a candidate company for the next discovery pass",
			run:         runSeedAdd,
		},
		"seed-list": {
			name:        "seed-list",
			description: "List candidate companies in the seed pool",
			run:         runSeedList,
		},
		"probe": {
			name:        "probe",
			description: "Probe ATS providers for a company's board without touching the database",
			run:         runProbe,
		},
		"stats": {
			name:        "stats",
			description: "Show seed pool and job archive statistics",
			run:         runStats,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: hirelens-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(os.Stdout, "  %-12s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

type migrateOptions struct {
	Timeout time.Duration
}

type dbResetOptions struct {
	Timeout     time.Duration
	Yes         bool
	Seed        bool
	AllowRemote bool
}

type dbSeedOptions struct {
	Timeout     time.Duration
	AllowRemote bool
}

type seedAddOptions struct {
	Name    string
	Slug    string
	Source  string
	Tier    int
	Timeout time.Duration
}

type seedListOptions struct {
	Untested bool
	Limit    int
	Offset   int
	Timeout  time.Duration
}

type probeOptions struct {
	Name    string
	Slug    string
	Timeout time.Duration
}

type statsOptions struct {
	Timeout time.Duration
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")

		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func runDBReset(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBResetFlags(args)
	if err != nil {
		return err
	}

	remote, err := guardRemoteHost(cmdCtx, opts.AllowRemote, "drop and recreate the public schema")
	if err != nil {
		return err
	}

	remoteHost := ""
	if remote {
		remoteHost = databaseHost(&cmdCtx.Config)
	}
	if confirmErr := confirmReset(opts, databaseTarget(&cmdCtx.Config), remoteHost); confirmErr != nil {
		return confirmErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("dropping public schema", "database", cmdCtx.Config.Postgres.Name)
		if resetErr := cmdCtx.resetDatabase(ctx, db); resetErr != nil {
			return resetErr
		}

		cmdCtx.Logger.Info("re-running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		if opts.Seed {
			cmdCtx.Logger.Info("seeding development data after reset")
			if seedErr := seedDevData(ctx, db, cmdCtx.Logger); seedErr != nil {
				return seedErr
			}
		}

		cmdCtx.Logger.Info("database reset completed successfully")
		return nil
	})
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBSeedFlags(args)
	if err != nil {
		return err
	}

	if _, guardErr := guardRemoteHost(cmdCtx, opts.AllowRemote, "seed development data on the configured database"); guardErr != nil {
		return guardErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("ensuring database migrations are current")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("seeding development data")
		if seedErr := seedDevData(ctx, db, cmdCtx.Logger); seedErr != nil {
			return seedErr
		}

		cmdCtx.Logger.Info("database seeding completed successfully")
		return nil
	})
}

func seedDevData(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	svcs, err := devseed.NewServices(db)
	if err != nil {
		return fmt.Errorf("build seed services: %w", err)
	}
	if err := devseed.Run(ctx, svcs, logger); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}
	return nil
}

func runSeedAdd(cmdCtx *commandContext, args []string) error {
	opts, err := parseSeedAddFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		seeds, err := newSeedService(cmdCtx, db)
		if err != nil {
			return err
		}

		seed, err := seeds.Create(ctx, &model.CreateSeedRequest{
			CompanyName: opts.Name,
			TokenSlug:   opts.Slug,
			Source:      opts.Source,
			Tier:        model.SeedTier(opts.Tier),
		})
		if err != nil {
			return fmt.Errorf("create seed: %w", err)
		}

		return writef(os.Stdout, "registered seed %d: %s (slug=%s, tier=%d, source=%s)\n",
			seed.ID, seed.CompanyName, seed.TokenSlug, seed.Tier, seed.Source)
	})
}

func runSeedList(cmdCtx *commandContext, args []string) error {
	opts, err := parseSeedListFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		seeds, err := newSeedService(cmdCtx, db)
		if err != nil {
			return err
		}

		list, err := seeds.List(ctx, service.SeedListOptions{
			Untested: opts.Untested,
			Limit:    opts.Limit,
			Offset:   opts.Offset,
		})
		if err != nil {
			return fmt.Errorf("list seeds: %w", err)
		}

		return printSeedTable(os.Stdout, list)
	})
}

func printSeedTable(w io.Writer, seeds []*model.Seed) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tCOMPANY\tSLUG\tTIER\tSOURCE\tLAST TESTED\tHIT\tRATE\n"); err != nil {
		return err
	}
	for _, s := range seeds {
		if err := writef(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%t\t%.2f\n",
			s.ID, s.CompanyName, s.TokenSlug, s.Tier, s.Source,
			util.FormatNullableTime(s.LastTested), s.IsHit, s.HitRate); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush seed table: %w", err)
	}
	return writef(w, "\n%d seeds\n", len(seeds))
}

func newSeedService(cmdCtx *commandContext, db *sql.DB) (*service.SeedService, error) {
	seeds, err := service.NewSeedService(service.SeedServiceOptions{
		Repo:   data.NewSeedRepo(db),
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build seed service: %w", err)
	}
	return seeds, nil
}

func runProbe(cmdCtx *commandContext, args []string) error {
	opts, err := parseProbeFlags(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	engine, registry, err := buildProbeEngine(cmdCtx)
	if err != nil {
		return err
	}

	start := time.Now()
	outcome, err := engine.ProbeSeed(ctx, &model.Seed{CompanyName: opts.Name, TokenSlug: opts.Slug})
	if err != nil {
		return fmt.Errorf("probe %q: %w", opts.Name, err)
	}

	elapsed := util.FormatDuration(time.Since(start))
	if outcome.Hit {
		return writef(os.Stdout, "HIT: %s hosts a %s board under token %q (%s, %d probe errors)\n",
			opts.Name, outcome.ATSType, outcome.Token, elapsed, outcome.ProbeErrors)
	}
	return writef(os.Stdout, "MISS: no live board found for %q across %d providers (%s, %d probe errors)\n",
		opts.Name, len(registry.All()), elapsed, outcome.ProbeErrors)
}

func buildProbeEngine(cmdCtx *commandContext) (*probe.Engine, *ats.Registry, error) {
	// No renderer: probe endpoints are plain JSON, so a one-off CLI probe
	// never needs the headless-browser fallback.
	fetcher, err := fetch.NewFetcher(fetch.Options{
		Config:    cmdCtx.Config.Fetcher,
		RateLimit: cmdCtx.Config.RateLimit,
		Logger:    cmdCtx.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build fetcher: %w", err)
	}

	registry := ats.NewRegistry()
	engine, err := probe.NewEngine(probe.Options{
		Registry: registry,
		Fetcher:  fetcher,
		Config:   cmdCtx.Config.Probe,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build probe engine: %w", err)
	}
	return engine, registry, nil
}

func runStats(cmdCtx *commandContext, args []string) error {
	opts, err := parseStatsFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		seedStats, err := data.NewSeedRepo(db).Stats(ctx)
		if err != nil {
			return fmt.Errorf("seed stats: %w", err)
		}
		totals, err := data.NewJobArchiveRepo(db).Stats(ctx)
		if err != nil {
			return fmt.Errorf("archive stats: %w", err)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		rows := []struct {
			name  string
			value string
		}{
			{"seeds total", fmt.Sprintf("%d", seedStats.Total)},
			{"seeds untested", fmt.Sprintf("%d", seedStats.Untested)},
			{"seeds hits", fmt.Sprintf("%d", seedStats.Hits)},
			{"seed hit rate", fmt.Sprintf("%.1f%%", seedStats.HitRate*100)},
			{"companies", fmt.Sprintf("%d", totals.Companies)},
			{"open jobs", fmt.Sprintf("%d", totals.OpenJobs)},
			{"closed jobs", fmt.Sprintf("%d", totals.ClosedJobs)},
			{"remote share", fmt.Sprintf("%.1f%%", totals.RemoteShare*100)},
			{"avg time to fill", fmt.Sprintf("%.1f days", totals.AvgTimeToFill)},
			{"distinct skills", fmt.Sprintf("%d", totals.DistinctSkills)},
		}
		for _, row := range rows {
			if writeErr := writef(tw, "%s\t%s\n", row.name, row.value); writeErr != nil {
				return writeErr
			}
		}
		if flushErr := tw.Flush(); flushErr != nil {
			return fmt.Errorf("flush stats table: %w", flushErr)
		}
		return nil
	})
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{
		Timeout: defaultMigrationTimeout,
	}

	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for migrations to complete",
	)

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}

	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseDBResetFlags(args []string) (dbResetOptions, error) {
	fs := flag.NewFlagSet("db-reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := dbResetOptions{
		Timeout: defaultMigrationTimeout,
	}

	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for reset operations to complete",
	)
	fs.BoolVar(
		&opts.Yes,
		"yes",
		false,
		"Skip confirmation prompt",
	)
	fs.BoolVar(
		&opts.Seed,
		"seed",
		false,
		"Run database seeding after reset completes",
	)
	fs.BoolVar(
		&opts.AllowRemote,
		"allow-remote",
		false,
		"Permit running against database hosts that do not look local",
	)

	if err := fs.Parse(args); err != nil {
		return dbResetOptions{}, err
	}

	if opts.Timeout <= 0 {
		return dbResetOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseDBSeedFlags(args []string) (dbSeedOptions, error) {
	fs := flag.NewFlagSet("db-seed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := dbSeedOptions{
		Timeout: defaultMigrationTimeout,
	}

	fs.DurationVar(
		&opts.Timeout,
		"timeout",
		defaultMigrationTimeout,
		"Maximum duration to wait for seeding to complete",
	)
	fs.BoolVar(
		&opts.AllowRemote,
		"allow-remote",
		false,
		"Permit running against database hosts that do not look local",
	)

	if err := fs.Parse(args); err != nil {
		return dbSeedOptions{}, err
	}

	if opts.Timeout <= 0 {
		return dbSeedOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseSeedAddFlags(args []string) (seedAddOptions, error) {
	fs := flag.NewFlagSet("seed-add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := seedAddOptions{
		Timeout: defaultCommandTimeout,
	}

	fs.StringVar(&opts.Slug, "slug", "", "Token slug override (defaults to a slug derived from the company name)")
	fs.StringVar(&opts.Source, "source", "manual", "Seed source label")
	fs.IntVar(&opts.Tier, "tier", 1, "Seed tier (1 premium, 2 index, 3 supplemental)")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the command")

	if err := fs.Parse(args); err != nil {
		return seedAddOptions{}, err
	}

	opts.Name = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if opts.Name == "" {
		return seedAddOptions{}, errors.New("company name is required, e.g. hirelens-admin seed-add Acme Robotics")
	}
	if opts.Timeout <= 0 {
		return seedAddOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseSeedListFlags(args []string) (seedListOptions, error) {
	fs := flag.NewFlagSet("seed-list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := seedListOptions{
		Timeout: defaultCommandTimeout,
	}

	fs.BoolVar(&opts.Untested, "untested", false, "Only list seeds that have never been probed")
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum number of seeds to list")
	fs.IntVar(&opts.Offset, "offset", 0, "Number of seeds to skip")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the command")

	if err := fs.Parse(args); err != nil {
		return seedListOptions{}, err
	}

	if opts.Timeout <= 0 {
		return seedListOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseProbeFlags(args []string) (probeOptions, error) {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := probeOptions{
		Timeout: defaultCommandTimeout,
	}

	fs.StringVar(&opts.Slug, "slug", "", "Token slug override (defaults to a slug derived from the company name)")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the probe")

	if err := fs.Parse(args); err != nil {
		return probeOptions{}, err
	}

	opts.Name = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if opts.Name == "" {
		return probeOptions{}, errors.New("company name is required, e.g. hirelens-admin probe Acme Robotics")
	}
	if opts.Timeout <= 0 {
		return probeOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func parseStatsFlags(args []string) (statsOptions, error) {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := statsOptions{
		Timeout: defaultCommandTimeout,
	}

	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the command")

	if err := fs.Parse(args); err != nil {
		return statsOptions{}, err
	}

	if opts.Timeout <= 0 {
		return statsOptions{}, errors.New("--timeout must be greater than zero")
	}

	return opts, nil
}

func withDatabase(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DatabaseURL: cmdCtx.Config.DatabaseURL,
		DBConfig:    cmdCtx.Config.Postgres,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}

// databaseHost reports the host the destructive-command safeguards should
// judge: the DATABASE_URL host when one is set, otherwise the DB_HOST value.
// An unparseable URL is returned verbatim so it reads as remote.
func databaseHost(cfg *config.AppConfig) string {
	dsn := strings.TrimSpace(cfg.DatabaseURL)
	if dsn == "" {
		return cfg.Postgres.Host
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	return u.Hostname()
}

func databaseTarget(cfg *config.AppConfig) string {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		return fmt.Sprintf("database at %q (DATABASE_URL)", databaseHost(cfg))
	}
	return fmt.Sprintf("database %q on %s:%d", cfg.Postgres.Name, cfg.Postgres.Host, cfg.Postgres.Port)
}

func guardRemoteHost(cmdCtx *commandContext, allow bool, action string) (bool, error) {
	host := databaseHost(&cmdCtx.Config)
	remote := isLikelyRemoteHost(host)
	if !remote {
		return false, nil
	}
	if !allow {
		return true, fmt.Errorf(
			"refusing to run against potentially remote database host %q; re-run with --allow-remote if this is intentional",
			host,
		)
	}
	if err := requireRemoteHostConfirmation(action, host); err != nil {
		return true, err
	}
	return true, nil
}

func (cmdCtx *commandContext) resetDatabase(ctx context.Context, db *sql.DB) error {
	if cmdCtx == nil {
		return errors.New("command context is required")
	}

	cfg := &cmdCtx.Config.Postgres
	statements := []string{
		"DROP SCHEMA public CASCADE",
		"CREATE SCHEMA public",
		"GRANT ALL ON SCHEMA public TO public",
	}
	if user := strings.TrimSpace(cfg.User); user != "" && !strings.EqualFold(user, "public") {
		statements = append(statements, "GRANT ALL ON SCHEMA public TO "+quoteIdentifier(user))
	}

	for _, stmt := range statements {
		if cmdCtx.Logger != nil {
			cmdCtx.Logger.DebugContext(ctx, "executing reset statement", "sql", stmt)
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}

func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func isLikelyRemoteHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" {
		return false
	}
	if h == "localhost" || h == "127.0.0.1" || h == "::1" {
		return false
	}
	if strings.HasSuffix(h, ".local") {
		return false
	}
	if ip := net.ParseIP(host); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}

func requireRemoteHostConfirmation(action, host string) error {
	if err := writef(
		os.Stderr,
		"\nWARNING: database host %q does not look like a local address.\n"+
			"This operation will %s.\n",
		host,
		action,
	); err != nil {
		return fmt.Errorf("print remote host warning: %w", err)
	}
	if err := writef(os.Stderr, "Type %q to continue or press enter to abort: ", host); err != nil {
		return fmt.Errorf("print remote host prompt: %w", err)
	}
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		if writeErr := writef(os.Stderr, "\nFailed to read confirmation input: %v\n", err); writeErr != nil {
			return fmt.Errorf("aborted by user: report write failed: %w", writeErr)
		}
		return errors.New("aborted by user")
	}
	if strings.TrimSpace(resp) != host {
		if writeErr := writeln(os.Stderr, "\nRemote safeguard check failed; aborting."); writeErr != nil {
			return fmt.Errorf("print remote safeguard failure: %w", writeErr)
		}
		return errors.New("aborted by user")
	}
	return nil
}

// confirmReset prompts before a schema reset. A remote host always prompts,
// even with --yes.
func confirmReset(opts dbResetOptions, target, remoteHost string) error {
	if opts.Yes && remoteHost == "" {
		return nil
	}

	warning := "WARNING: this will drop and recreate the public schema for the configured database."
	if remoteHost != "" {
		warning += fmt.Sprintf(" Host %q appears to be remote; double-check before proceeding.", remoteHost)
	}
	if err := writeln(os.Stdout, warning); err != nil {
		return fmt.Errorf("print confirmation warning: %w", err)
	}
	if err := writef(os.Stdout, "About to reset %s.\n", target); err != nil {
		return fmt.Errorf("print confirmation message: %w", err)
	}
	if err := write(os.Stdout, "Continue? [y/N]: "); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		if writeErr := writef(os.Stdout, "\nFailed to read confirmation input: %v\n", err); writeErr != nil {
			return fmt.Errorf("aborted by user: report write failed: %w", writeErr)
		}
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
