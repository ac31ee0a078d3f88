package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"boardfeed-engine/internal/config"
	"boardfeed-engine/internal/importer"
	"boardfeed-engine/internal/ingest"
	"boardfeed-engine/internal/ingest/ats"
	"boardfeed-engine/internal/ingest/util"
	"boardfeed-engine/internal/lifecycle"
	"boardfeed-engine/internal/notify"
	"boardfeed-engine/internal/scheduler"
	"boardfeed-engine/internal/search"
	"boardfeed-engine/internal/secrets"
	"boardfeed-engine/internal/store"
)

func main() {
	var (
		cfgPath = flag.String("config", filepath.Join("config", "config.yml"), "path to app config")
		once    = flag.Bool("once", false, "run a single import and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", *cfgPath, err)
	}
	if v := config.Validate(cfg); !v.OK() {
		log.Fatalf("config invalid: %v", v.Errors)
	} else {
		for _, w := range v.Warnings {
			log.Printf("[engine] config: %s", w)
		}
	}

	employers, err := config.LoadEmployers(cfg.Import.EmployersFile)
	if err != nil {
		log.Fatalf("employers load failed (%s): %v", cfg.Import.EmployersFile, err)
	}
	if v := config.ValidateEmployers(employers); !v.OK() {
		log.Fatalf("employer roster invalid: %v", v.Errors)
	} else {
		for _, w := range v.Warnings {
			log.Printf("[engine] roster: %s", w)
		}
	}
	log.Printf("[engine] %d employers on the roster", len(employers))

	if cfg.Import.BoardsFile != "" {
		boards, err := config.LoadBoards(cfg.Import.BoardsFile)
		if err != nil {
			log.Fatalf("boards load failed (%s): %v", cfg.Import.BoardsFile, err)
		}
		if v := config.ValidateBoards(employers, boards); !v.OK() {
			log.Fatalf("board roster invalid: %v", v.Errors)
		} else {
			for _, w := range v.Warnings {
				log.Printf("[engine] boards: %s", w)
			}
		}
	}

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		log.Fatal(err)
	}
	db, err := store.Open(filepath.Join(cfg.App.DataDir, cfg.App.DBFile))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	limiter := util.NewHostLimiter(cfg.Import.RatePerHost, 4)
	registry := ats.NewRegistry(
		&http.Client{Timeout: 30 * time.Second},
		limiter,
		secrets.Keychain{},
	)

	runner := &importer.Runner{
		DB:        db.Pool,
		Employers: employers,
		Agg: &ingest.Aggregator{
			Registry:     registry,
			Workers:      cfg.Import.Workers,
			FetchTimeout: cfg.FetchTimeout(),
		},
		Reindexer: search.StoreReindexer{DB: db.Pool},
		Notifier:  buildNotifier(cfg),
		Tagger:    lifecycle.Tagger{Taxonomy: cfg.Taxonomy},
		LockPath:  filepath.Join(cfg.App.DataDir, cfg.App.LockFile),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	task := func(ctx context.Context) error {
		outcome, err := runner.Run(ctx)
		if errors.Is(err, importer.ErrRunInProgress) {
			log.Printf("[engine] previous run still going, skipped")
			return nil
		}
		log.Printf("[engine] run finished: %s", outcome)
		return err
	}

	if *once {
		if err := task(ctx); err != nil {
			log.Fatalf("import failed: %v", err)
		}
		return
	}

	log.Printf("[engine] importing every %s", cfg.Interval())
	scheduler.Every(ctx, cfg.Interval(), "import", task)
}

// buildNotifier falls back to log-only delivery when mail is unconfigured
// or the password is missing from the keychain.
func buildNotifier(cfg config.Config) notify.Notifier {
	logOnly := notify.LogNotifier{Printf: log.Printf}
	if cfg.Notify.SMTPHost == "" || len(cfg.Notify.To) == 0 {
		return logOnly
	}
	password := ""
	if cfg.Notify.KeyringAccount != "" {
		pw, err := secrets.Keychain{}.SMTPPassword(cfg.Notify.KeyringAccount)
		if err != nil {
			log.Printf("[engine] smtp password unavailable, reports go to the log: %v", err)
			return logOnly
		}
		password = pw
	}
	return notify.SMTPNotifier{
		Host:     cfg.Notify.SMTPHost,
		Port:     cfg.Notify.SMTPPort,
		Username: cfg.Notify.Username,
		Password: password,
		From:     cfg.Notify.From,
		To:       cfg.Notify.To,
	}
}
