// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	invitationstore "github.com/pitchside/pitchside/internal/app/store/invitations"
	sportstore "github.com/pitchside/pitchside/internal/app/store/sports"
	"github.com/pitchside/pitchside/internal/app/system/workers"
	"go.uber.org/zap"
)

// inviteCleanup is started here and stopped in Shutdown.
var inviteCleanup *workers.InviteCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// PitchSide seeds the sports catalog on first boot so that sport-type lookups
// have data to resolve against. The seed is idempotent: it only inserts when
// the collection is empty.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	seeded, err := sportstore.New(deps.MongoDatabase).SeedDefaults(ctx)
	if err != nil {
		logger.Error("sports catalog seed failed", zap.Error(err))
		return err
	}
	if seeded > 0 {
		logger.Info("seeded sports catalog", zap.Int("count", seeded))
	}

	inviteCleanup = workers.NewInviteCleanup(invitationstore.New(deps.MongoDatabase), logger, 10*time.Minute)
	inviteCleanup.Start()
	return nil
}
