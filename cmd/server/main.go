package main

import (
	"github.com/gin-gonic/gin"

	"gera-relatorio-backend/internal/cep"
	"gera-relatorio-backend/internal/config"
	"gera-relatorio-backend/internal/db"
	"gera-relatorio-backend/internal/logger"
	"gera-relatorio-backend/internal/routes"
	"gera-relatorio-backend/internal/storage"
	"gera-relatorio-backend/internal/store"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	var documents store.Documents
	switch cfg.StoreDriver {
	case "mysql":
		database, err := db.Open(cfg.DbDsn)
		if err != nil {
			log.Fatal().Err(err).Msg("db error")
		}
		documents = store.NewSQLStore(database)
	default:
		st, err := storage.Open(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("storage error")
		}
		documents = store.NewFileStore(st)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, routes.Deps{
		Store: documents,
		Cep:   cep.NewClient(cfg.CepBaseURL),
		Cfg:   cfg,
		Log:   log,
	})

	log.Info().Str("addr", cfg.Addr).Str("store", cfg.StoreDriver).Msg("starting server")
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
