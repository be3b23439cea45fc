package cmd

import (
	"facturacion-admin/database"
	"facturacion-admin/logger"
	"facturacion-admin/routes"
	"facturacion-admin/services"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var inMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("serve")

		if err := cfg.ValidateAuth(); err != nil {
			log.Warn().Err(err).Msg("JSON API will reject every request")
		}

		var (
			db    *gorm.DB
			store services.Store
		)
		if inMemory {
			store = services.NewMemoryStore(database.DefaultBilling())
			log.Warn().Msg("using in-memory store, nothing is persisted")
		} else {
			var err error
			db, err = database.Connect(cfg)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			store = database.NewGormStore(db)
		}

		app := routes.NewApp(routes.AppConfig{
			BodyLimitBytes:  cfg.BodyLimitBytes,
			AllowedOrigins:  cfg.AllowedOrigins,
			RateLimitMax:    cfg.RateLimitMax,
			RateLimitWindow: cfg.RateLimitWindow,
		}, routes.Deps{
			Billings:  services.NewBillingService(store, cfg.Now),
			DB:        db,
			JWTSecret: []byte(cfg.JWTSecret),
			Now:       cfg.Now,
		})

		log.Info().Str("port", cfg.Port).Msg("API server starting")
		return app.Listen(":" + cfg.Port)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&inMemory, "memory", false, "keep billings in memory instead of Postgres")
	rootCmd.AddCommand(serveCmd)
}
