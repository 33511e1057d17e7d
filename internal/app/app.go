package app

import (
	"net/http"

	"gorm.io/gorm"
	"roomies-go/internal/auth"
	"roomies-go/internal/config"
	"roomies-go/internal/db"
	expensedomain "roomies-go/internal/domain/expense"
	householddomain "roomies-go/internal/domain/household"
	invitationdomain "roomies-go/internal/domain/invitation"
	taskdomain "roomies-go/internal/domain/task"
	userdomain "roomies-go/internal/domain/user"
	"roomies-go/internal/email"
	expenserepo "roomies-go/internal/repository/postgres/expense"
	householdrepo "roomies-go/internal/repository/postgres/household"
	invitationrepo "roomies-go/internal/repository/postgres/invitation"
	taskrepo "roomies-go/internal/repository/postgres/task"
	userrepo "roomies-go/internal/repository/postgres/user"
	"roomies-go/internal/scheduler"
	"roomies-go/internal/transport/httpserver"
	"roomies-go/internal/transport/httpserver/handler"
	authmw "roomies-go/internal/transport/httpserver/middleware"
	"roomies-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	households := householddomain.NewService(householdrepo.NewPostgres(dbConn))

	mailer := email.NewFromConfig(cfg.Email)
	invitations := invitationdomain.NewService(
		invitationrepo.NewPostgres(dbConn), households, mailer, cfg.Invitations.TTL, log)
	expenses := expensedomain.NewService(expenserepo.NewPostgres(dbConn), households)
	tasks := taskdomain.NewService(taskrepo.NewPostgres(dbConn), households)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	log.Info("app: initializing router")
	handlers := handler.New(users, households, invitations, expenses, tasks,
		tokens, cfg.IsProduction(), log)
	session := authmw.NewSessionAuth(tokens, users)
	router := httpserver.NewRouter(cfg, handlers, session)

	log.Info("app: initializing scheduler")
	sched, err := scheduler.New(invitations, cfg.Invitations.SweepInterval, log)
	if err != nil {
		return nil, err
	}
	sched.Start()

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		scheduler:  sched,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
