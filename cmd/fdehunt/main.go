package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"fdehunt-engine/internal/config"
	"fdehunt-engine/internal/events"
	"fdehunt-engine/internal/export"
	"fdehunt-engine/internal/fetch"
	"fdehunt-engine/internal/harvest"
	"fdehunt-engine/internal/scheduler"
	"fdehunt-engine/internal/secrets"
	"fdehunt-engine/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	var (
		cfgPath    = flag.String("config", "", "path to config.yml (default: <data-dir>/config.yml, bootstrapped on first run)")
		dataDir    = flag.String("data-dir", "", "data directory (default: $FDEHUNT_DATA_DIR or ./data)")
		every      = flag.Duration("every", 0, "re-run the harvest on this interval (0 = run once)")
		resetSeen  = flag.Bool("reset-seen", false, "clear the seen-jobs store and exit")
		initOnly   = flag.Bool("init", false, "bootstrap the data dir and config, then exit")
		dryRun     = flag.Bool("dry-run", false, "harvest but skip exports and the seen-set save")
		showEvents = flag.Bool("events", false, "stream progress events as JSON lines on stdout")
		setToken   = flag.Bool("set-notion-token", false, "read a Notion API token from stdin, store it in the OS keychain, and exit")
		delToken   = flag.Bool("delete-notion-token", false, "remove the Notion API token from the OS keychain and exit")
	)
	flag.Parse()

	// .env may carry NOTION_API_TOKEN; a missing file is fine
	_ = godotenv.Load()

	if *setToken {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("read token: %v", err)
		}
		if err := secrets.SetNotionToken(strings.TrimSpace(string(b))); err != nil {
			log.Fatalf("store token: %v", err)
		}
		log.Printf("[main] notion token stored in keychain")
		return
	}
	if *delToken {
		if err := secrets.DeleteNotionToken(); err != nil {
			log.Fatalf("delete token: %v", err)
		}
		log.Printf("[main] notion token removed from keychain")
		return
	}

	dir := *dataDir
	if dir == "" {
		dir = os.Getenv("FDEHUNT_DATA_DIR")
	}
	if dir == "" {
		dir = "data"
	}

	userCfgPath := *cfgPath
	if userCfgPath == "" {
		p, err := config.EnsureUserConfig(dir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatalf("config bootstrap failed: %v", err)
		}
		userCfgPath = p
	}
	if *initOnly {
		fmt.Println(userCfgPath)
		return
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg.App.DataDir = dir
	if err := config.OverlayCompanies(&cfg, filepath.Join(dir, "companies.yml")); err != nil {
		log.Fatalf("companies overlay failed: %v", err)
	}

	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !v.OK() {
		for _, e := range v.Errors {
			log.Printf("[config] error: %s", e)
		}
		os.Exit(1)
	}

	// tee the log into the data dir so scheduled runs leave a trail
	logDir := filepath.Join(cfg.App.DataDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err == nil {
		if f, err := os.OpenFile(filepath.Join(logDir, "run.log"),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, filepath.Join(cfg.App.DataDir, "seen.db"))
	if err != nil {
		log.Fatalf("seen store: %v", err)
	}
	defer st.Close()

	if *resetSeen {
		if err := st.Reset(ctx); err != nil {
			log.Fatalf("reset seen: %v", err)
		}
		log.Printf("[main] seen store cleared")
		return
	}

	if cfg.Seen.PruneAfterDays > 0 {
		age := time.Duration(cfg.Seen.PruneAfterDays) * 24 * time.Hour
		if n, err := st.PruneOlderThan(ctx, age); err != nil {
			log.Printf("[main] seen prune failed: %v", err)
		} else if n > 0 {
			log.Printf("[main] pruned=%d seen ids older than %dd", n, cfg.Seen.PruneAfterDays)
		}
	}

	hub := events.NewHub()
	if *showEvents {
		ch := hub.Subscribe()
		defer hub.Unsubscribe(ch)
		go func() {
			for evt := range ch {
				fmt.Println(evt)
			}
		}()
	}

	runOnce := func(ctx context.Context) error {
		client := fetch.NewClient(fetch.Options{
			Timeout:        cfg.RequestTimeout(),
			RequestsPerSec: cfg.Harvest.RequestsPerSecond,
			Burst:          cfg.Harvest.Burst,
		})
		defer client.Close()

		report, err := harvest.Run(ctx, cfg, client, st, hub)
		if err != nil {
			return err
		}

		if *dryRun {
			log.Printf("[main] dry run: skipping exports and seen-set save")
			report.Log()
			return nil
		}

		if cfg.Export.CSV && len(report.NewJobs) > 0 {
			path, err := export.WriteCSV(cfg.App.OutputDir, report.NewJobs, report.StartedAt)
			if err != nil {
				return fmt.Errorf("csv export: %w", err)
			}
			log.Printf("[main] csv=%s jobs=%d", path, len(report.NewJobs))
		}

		if cfg.Export.Notion.Enabled && len(report.NewJobs) > 0 {
			token, err := secrets.NotionToken()
			if err != nil {
				log.Printf("[notion] skipped: %v", err)
			} else {
				nc := export.NewNotionClient(token, cfg.Export.Notion.DatabaseID)
				added, err := nc.SyncJobs(ctx, report.NewJobs, report.StartedAt)
				if err != nil {
					log.Printf("[notion] partial sync added=%d err=%v", added, err)
				} else if added > 0 {
					log.Printf("[notion] synced=%d", added)
				}
			}
		}

		// persist only after exports so unexported jobs resurface next run
		if err := st.Save(ctx, report.Seen); err != nil {
			return fmt.Errorf("save seen set: %w", err)
		}

		report.Log()
		return nil
	}

	if *every > 0 {
		log.Printf("[main] scheduling harvest every %s", *every)
		scheduler.Every(ctx, *every, "harvest", runOnce)
		return
	}
	if err := runOnce(ctx); err != nil {
		log.Fatalf("[main] run failed: %v", err)
	}
}
