package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/angas/esios-go/config"
	"github.com/angas/esios-go/database"
	"github.com/angas/esios-go/esios"
	"github.com/angas/esios-go/task"
	"github.com/angas/esios-go/types/maybe"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	client *esios.Client
	live   *task.LiveData
	hub    *Hub
	tm     *TemplateManager
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(db *database.Database, client *esios.Client, live *task.LiveData, cnfg config.AppConfigApi) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger: logger,
		config: cnfg,
		client: client,
		live:   live,
		hub:    NewHub(logger),
		tm:     tm,
	}

	go s.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", staticFilesHandler(cnfg.WwwDir))

	http.Handle("/prices", logReqMW(NewPricesHandler(
		logger.With(slog.String("handler", "prices")), s.tm, client)))

	http.Handle("/demand", logReqMW(NewDemandHandler(
		logger.With(slog.String("handler", "demand")), s.tm, client)))

	http.Handle("/generation", logReqMW(NewGenerationHandler(
		logger.With(slog.String("handler", "generation")), s.tm, client)))

	http.Handle("/emissions", logReqMW(NewEmissionsHandler(
		logger.With(slog.String("handler", "emissions")), s.tm, client)))

	http.Handle("/indicators", logReqMW(NewIndicatorsHandler(
		logger.With(slog.String("handler", "indicators")), s.tm, client)))

	http.Handle("/chart", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "chart")), client)))

	http.Handle("/export", logReqMW(NewExportHandler(
		logger.With(slog.String("handler", "export")), client)))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")), db, s.tm)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Second * 10)
	defer ticker.Stop()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			data := liveView{
				Price:          s.live.Price(),
				Demand:         s.live.Demand(),
				RenewableShare: s.live.RenewableShare(),
				UpdatedAt:      s.live.UpdatedAt().Format("15:04:05"),
			}
			buf, err := s.tm.Execute("live_data.html", data)
			if err != nil {
				s.logger.Error("template execution failed", slog.Any("error", err))
				return
			}

			s.hub.Broadcast <- buf.Bytes()
		}
	}
}

type liveView struct {
	Price          maybe.Maybe[float64]
	Demand         maybe.Maybe[float64]
	RenewableShare maybe.Maybe[float64]
	UpdatedAt      string
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
