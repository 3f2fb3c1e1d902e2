package migrate

import (
	"context"
	"fmt"

	"github.com/mateohuerta/sneakpeak-backend/pkg/config"
	"github.com/mateohuerta/sneakpeak-backend/pkg/db"
	"github.com/mateohuerta/sneakpeak-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations at boot. It only acts in dev with
// the auto-migrate flag set; every other environment runs cmd/migrate
// explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "applying migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "migrations up to date")
	return nil
}
