package task

import (
	"context"
	"log/slog"

	"github.com/angas/esios-go/config"
	"github.com/angas/esios-go/database"
	"github.com/angas/esios-go/esios"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	LiveDataTask    func()
	MaintenanceTask func()
}

func NewTasks(db *database.Database, client *esios.Client, live *LiveData, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		LiveDataTask:    NewLiveDataTask(logger.With(slog.String("task", "live_data")), client, live),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg.Logging),
	}
}

func (t *Tasks) Run() {
	if _, err := t.cron.AddFunc(t.cnfg.Live.GetRunAt(), t.LiveDataTask); err != nil {
		panic(err)
	}
	if _, err := t.cron.AddFunc("30 2 * * *", t.MaintenanceTask); err != nil {
		panic(err)
	}
	t.cron.Start()

	// Prime the ticker so the first dashboard visit has data.
	go t.LiveDataTask()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
