package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/esios-go/config"
	"github.com/angas/esios-go/database"
)

// NewMaintenanceTask trims the application log down to its configured
// maximum size.
func NewMaintenanceTask(logger *slog.Logger, db *database.Database, cnfg config.AppConfigLogging) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := db.PurgeLog(ctx, cnfg.GetDbMaxEntries()); err != nil {
			logger.Error("log purge failed", slog.Any("error", err))
			return
		}
		logger.Debug("maintenance done")
	}
}
