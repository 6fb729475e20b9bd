// Command skillsnap runs the portfolio API. Every component is
// constructed here, once, and handed to whatever needs it; there are
// no globals and no lookup container.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsnap/portfolio/auth"
	"github.com/skillsnap/portfolio/cache"
	"github.com/skillsnap/portfolio/config"
	"github.com/skillsnap/portfolio/httpapi"
	"github.com/skillsnap/portfolio/identity"
	"github.com/skillsnap/portfolio/model"
	"github.com/skillsnap/portfolio/observe"
	"github.com/skillsnap/portfolio/observe/zaplog"
	"github.com/skillsnap/portfolio/service"
	"github.com/skillsnap/portfolio/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "skillsnap:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := zaplog.NewProduction(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.L.Sync()

	ctx := context.Background()

	meterProvider := sdkmetric.NewMeterProvider()
	defer meterProvider.Shutdown(ctx)
	metrics, err := observe.NewMetrics(meterProvider.Meter("skillsnap"))
	if err != nil {
		return err
	}

	// Cache store: redis when configured, in-process otherwise.
	var cacheStore cache.Store
	if cfg.RedisAddr != "" {
		rs, err := cache.NewRedisStore(cache.RedisConfig{
			Client:      goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr}),
			CloseClient: true,
		})
		if err != nil {
			return err
		}
		defer rs.Close()
		cacheStore = rs
	} else {
		ms := cache.NewMemoryStore(cache.WithSweepInterval(time.Minute))
		defer ms.Close()
		cacheStore = ms
	}

	authCfg, err := auth.NewConfig([]byte(cfg.JWTSecret), cfg.TokenLifetime)
	if err != nil {
		return err
	}
	issuer := auth.NewIssuer(authCfg)
	gate := auth.NewGate(auth.NewValidator(authCfg))

	accounts := identity.NewMemoryAccounts()
	if err := seedAdmin(ctx, accounts, cfg, log); err != nil {
		return err
	}

	profileStore := store.NewMemoryStore(func(p model.Profile, id int) model.Profile { p.ID = id; return p })
	projectStore := store.NewMemoryStore(func(p model.Project, id int) model.Project { p.ID = id; return p })
	skillStore := store.NewMemoryStore(func(s model.Skill, id int) model.Skill { s.ID = id; return s })

	policy := cfg.CachePolicy()
	invalidator := cache.NewInvalidator(cacheStore, metrics)

	profileExists := func(ctx context.Context, id int) error {
		ok, err := profileStore.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return &model.ValidationError{Field: "profileId", Reason: "references a profile that does not exist"}
		}
		return nil
	}

	profiles := service.NewProfiles(service.EntityConfig[model.Profile]{
		Kind:        model.KindProfile,
		Gate:        gate,
		Store:       profileStore,
		Cache:       cache.NewReadThrough[model.Profile](model.KindProfile.String(), cacheStore, policy, cache.WithRecorder[model.Profile](metrics)),
		Invalidator: invalidator,
		Logger:      log,
		Validate: func(_ context.Context, p *model.Profile) error {
			return p.Validate()
		},
		ID: model.Profile.EntityID,
	})

	projects := service.NewEntity(service.EntityConfig[model.Project]{
		Kind:        model.KindProject,
		Gate:        gate,
		Store:       projectStore,
		Cache:       cache.NewReadThrough[model.Project](model.KindProject.String(), cacheStore, policy, cache.WithRecorder[model.Project](metrics)),
		Invalidator: invalidator,
		Logger:      log,
		Validate: func(ctx context.Context, p *model.Project) error {
			if err := p.Validate(); err != nil {
				return err
			}
			return profileExists(ctx, p.ProfileID)
		},
		ID: model.Project.EntityID,
	})

	skills := service.NewEntity(service.EntityConfig[model.Skill]{
		Kind:        model.KindSkill,
		Gate:        gate,
		Store:       skillStore,
		Cache:       cache.NewReadThrough[model.Skill](model.KindSkill.String(), cacheStore, policy, cache.WithRecorder[model.Skill](metrics)),
		Invalidator: invalidator,
		Logger:      log,
		Validate: func(ctx context.Context, s *model.Skill) error {
			if err := s.Validate(); err != nil {
				return err
			}
			return profileExists(ctx, s.ProfileID)
		},
		ID: model.Skill.EntityID,
	})

	api := httpapi.New(httpapi.Config{
		Profiles: profiles,
		Projects: projects,
		Skills:   skills,
		Auth:     service.NewAuth(accounts, issuer, log),
		Logger:   log,
		Denials:  metrics,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", observe.F("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedAdmin creates the admin account when the deployment configures
// one. Without it every account starts with no roles.
func seedAdmin(ctx context.Context, accounts *identity.MemoryAccounts, cfg *config.Config, log observe.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	acct, err := accounts.Create(ctx, cfg.AdminEmail, cfg.AdminPassword, auth.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Info(ctx, "admin account seeded", observe.F("subject", acct.ID))
	return nil
}
