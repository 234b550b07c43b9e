package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/sysmgr/internal/component"
	"github.com/l1jgo/sysmgr/internal/config"
	"github.com/l1jgo/sysmgr/internal/core/discovery"
	"github.com/l1jgo/sysmgr/internal/core/ecs"
	"github.com/l1jgo/sysmgr/internal/core/event"
	"github.com/l1jgo/sysmgr/internal/core/service"
	coresys "github.com/l1jgo/sysmgr/internal/core/system"
	"github.com/l1jgo/sysmgr/internal/persist"
	"github.com/l1jgo/sysmgr/internal/scripting"
	"github.com/l1jgo/sysmgr/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Boot ──────────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("SYSBOOT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Shared services
	printSection("services")
	bus := event.NewBus()
	world := ecs.NewWorld()
	stores := component.NewStores(world)

	loc := service.NewLocator()
	service.Put(loc, log)
	service.Put(loc, bus)
	service.Put[coresys.EventSystem](loc, bus)
	service.Put(loc, world)
	service.Put(loc, stores)

	var repo *persist.SystemRepo
	if cfg.Database.DSN != "" {
		db, err := openDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = persist.NewSystemRepo(db)
		service.Put(loc, db)
		printOK("PostgreSQL connected")
	}

	lua, err := scripting.NewEngine(cfg.Systems.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()
	lua.AttachBus(bus)
	service.Put(loc, lua)
	printStat("services", loc.Len())

	// 4. Discover and register systems
	printSection("systems")
	manifest, err := discovery.LoadManifest(cfg.Systems.Manifest)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	mgr := coresys.NewManager(loc, log)
	mgr.SetFilter(manifest.Enabled)
	printStat("builtin systems", mgr.LoadSystems(cfg.Systems.Namespace, discovery.Default))
	printStat("lua systems", mgr.LoadSystems(cfg.Systems.ScriptNamespace, lua))
	defer mgr.Clear()

	// 5. Inject dependencies and start every system
	mgr.Initialise()
	printOK(fmt.Sprintf("%d systems initialised", mgr.Len()))

	if repo != nil {
		if err := recordBoot(ctx, repo, cfg.Server.Name, mgr); err != nil {
			log.Error("failed to record boot", zap.Error(err))
		}
	}

	seedEntities(world, stores, bus, cfg.Systems.SeedEntities)
	fmt.Println()

	// 6. Run the loop until signalled
	loop := coresys.NewLoop(coresys.NewRunner(mgr), cfg.Loop.TickRate, cfg.Loop.FrameRate, log)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped", zap.Int("entities", world.EntityCount()))
	return nil
}

func openDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*persist.DB, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(dbCtx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	version, err := persist.RunMigrations(dbCtx, db.Pool)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	log.Info("database ready", zap.Int64("schema_version", version))
	return db, nil
}

func recordBoot(ctx context.Context, repo *persist.SystemRepo, serverName string, mgr *coresys.Manager) error {
	rec := persist.BootRecord{ServerName: serverName}
	for name, s := range mgr.Entries() {
		rec.Systems = append(rec.Systems, persist.SystemRow{
			Name:         name,
			Capabilities: coresys.Capabilities(s),
		})
	}
	id, err := repo.RecordBoot(ctx, rec)
	if err != nil {
		return err
	}
	printOK(fmt.Sprintf("boot %d recorded", id))
	return nil
}

// seedEntities spawns n movers on a ring with staggered lifetimes.
func seedEntities(w *ecs.World, st *component.Stores, bus *event.Bus, n int) {
	for i := 0; i < n; i++ {
		system.SpawnMover(w, st, bus,
			component.Position{X: float64(i), Y: 0},
			component.Velocity{DX: 1, DY: float64(i%3) - 1},
			time.Duration(i+1)*time.Second,
		)
	}
	printStat("seeded entities", n)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
