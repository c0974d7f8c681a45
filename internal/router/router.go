package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "mediassist/internal/adapters/storage/memory"
	pg "mediassist/internal/adapters/storage/postgres"
	lite "mediassist/internal/adapters/storage/sqlite"

	"mediassist/internal/adapters/notify/sendgrid"
	"mediassist/internal/domain/doses"
	"mediassist/internal/domain/medicines"
	"mediassist/internal/domain/pharmacies"
	"mediassist/internal/domain/profiles"
	"mediassist/internal/middleware"
	"mediassist/internal/platform/logger"
	"mediassist/internal/ports/auth"
	"mediassist/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa esta conexión (Postgres). Si no, decide por env:
	// DB_DSN => postgres, SQLITE_PATH => sqlite, nada => in-memory.
	DB *sql.DB

	// Opcional: notifier de dosis perdidas. Si es nil intenta SendGrid por env
	// y cae a Noop.
	Notifier notify.MissedDoseNotifier

	// Opcional: logger. Si es nil se arma desde env.
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		medRepo  medicines.Repository
		doseRepo doses.Repository
		profRepo profiles.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, falling back", map[string]any{"error": err.Error()})
			}
		}
	}

	switch {
	case db != nil:
		medRepo = pg.NewMedicinesRepo(db)
		doseRepo = pg.NewDosesRepo(db)
		profRepo = pg.NewProfilesRepo(db)
		log.Info("storage: postgres", nil)

	case os.Getenv("SQLITE_PATH") != "":
		sdb, err := lite.Open(os.Getenv("SQLITE_PATH"))
		if err != nil {
			log.Error("sqlite open failed, using in-memory", map[string]any{"error": err.Error()})
			medRepo = mem.NewMedicinesRepo()
			doseRepo = mem.NewDosesRepo()
			profRepo = mem.NewProfilesRepo()
			break
		}
		medRepo = lite.NewMedicinesRepo(sdb)
		doseRepo = lite.NewDosesRepo(sdb)
		profRepo = lite.NewProfilesRepo(sdb)
		log.Info("storage: sqlite", map[string]any{"path": os.Getenv("SQLITE_PATH")})

	default:
		medRepo = mem.NewMedicinesRepo()
		doseRepo = mem.NewDosesRepo()
		profRepo = mem.NewProfilesRepo()
		log.Info("storage: in-memory", nil)
	}

	notifier := opts.Notifier
	if notifier == nil {
		if sg, ok := sendgrid.NewFromEnv(); ok {
			notifier = sg
		} else {
			notifier = notify.Noop{}
		}
	}

	// Services por módulo
	medsSvc := medicines.NewService(medRepo)
	profSvc := profiles.NewService(profRepo)
	dosesSvc := doses.NewService(doseRepo, medsSvc, profSvc, notifier, log, doses.Config{
		AlertPolicy:  doses.ParseAlertPolicy(os.Getenv("ALERT_POLICY")),
		SupplyPolicy: doses.ParseSupplyPolicy(os.Getenv("SUPPLY_POLICY")),
	})
	pharmSvc := pharmacies.NewService()

	// Rutas por módulo
	medicines.RegisterRoutes(r, medsSvc)
	doses.RegisterRoutes(r, dosesSvc)
	profiles.RegisterRoutes(r, profSvc)
	pharmacies.RegisterRoutes(r, pharmSvc)

	return r
}
