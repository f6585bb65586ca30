package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appsync "github.com/jhoicas/service-stock-sync/internal/application/sync"
	apptheme "github.com/jhoicas/service-stock-sync/internal/application/theme"
	"github.com/jhoicas/service-stock-sync/internal/domain/stock"
	"github.com/jhoicas/service-stock-sync/internal/infrastructure/graph"
	"github.com/jhoicas/service-stock-sync/internal/infrastructure/staticsite"
	"github.com/jhoicas/service-stock-sync/internal/infrastructure/yamlfile"
	httpRouter "github.com/jhoicas/service-stock-sync/internal/interfaces/http"
	"github.com/jhoicas/service-stock-sync/pkg/config"
	"github.com/jhoicas/service-stock-sync/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stocksync",
	Short: "Sincroniza el stock de servicio desde SharePoint hacia el sitio estático",
	Long: "stocksync descarga una tabla de Excel alojada en SharePoint vía Microsoft Graph, " +
		"la normaliza a un JSON de stock que consume el front-end estático y regenera la " +
		"hoja de estilos desde la paleta. La cadencia la pone el scheduler del CI.",
	SilenceUsage: true,
}

func main() {
	// Cargar .env si existe; las env vars del CI tienen prioridad igualmente
	_ = godotenv.Load()

	rootCmd.AddCommand(syncCmd(), cssCmd(), serveCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// boot carga configuración y logger, comunes a todos los subcomandos.
func boot() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	return cfg, log, nil
}

// syncCmd ejecuta una corrida completa: descarga, normalización y publicación.
func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Descarga la tabla, la normaliza y publica el JSON de stock",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := boot()
			if err != nil {
				return err
			}
			if err := cfg.Graph.Validate(); err != nil {
				log.Error().Err(err).Msg("configuración incompleta; revisar los secrets del CI")
				return err
			}

			fetcher := graph.NewClient(graph.Config{
				TenantID:     cfg.Graph.TenantID,
				ClientID:     cfg.Graph.ClientID,
				ClientSecret: cfg.Graph.ClientSecret,
				SiteHostname: cfg.Graph.SiteHostname,
				SitePath:     cfg.Graph.SitePath,
				WorkbookPath: cfg.Graph.WorkbookPath,
				TableName:    cfg.Graph.TableName,
			}, log.Component("graph"))

			store := staticsite.NewSnapshotStore(cfg.Output.SnapshotPath)
			normalizer := stock.NewNormalizer(stock.ColumnMapping{
				SKUColumn:   cfg.Columns.SKU,
				ModelColumn: cfg.Columns.Model,
				QtyColumn:   cfg.Columns.Qty,
			})

			uc := appsync.NewUseCase(fetcher, store, normalizer, log.Component("sync"))
			res, err := uc.Run(cmd.Context())
			if err != nil {
				log.Error().Err(err).Msg("corrida de sincronización fallida")
				return err
			}
			log.Info().Int("records", res.Records).Str("path", cfg.Output.SnapshotPath).Msg("corrida completada")
			return nil
		},
	}
}

// cssCmd regenera la hoja de estilos desde la paleta. No requiere credenciales.
func cssCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "css",
		Short: "Regenera la hoja de estilos del sitio desde la paleta",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := boot()
			if err != nil {
				return err
			}

			loader := yamlfile.NewPaletteLoader(cfg.Output.PalettePath)
			writer := staticsite.NewStylesheetWriter(cfg.Output.StylesheetPath)
			uc := apptheme.NewGenerateUseCase(loader, writer, log.Component("theme"))

			if err := uc.Generate(); err != nil {
				log.Error().Err(err).Msg("generación de estilos fallida")
				return err
			}
			log.Info().Str("path", cfg.Output.StylesheetPath).Msg("hoja de estilos publicada")
			return nil
		},
	}
}

// serveCmd levanta el servidor local de previsualización del sitio estático.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sirve localmente el sitio estático y el snapshot publicado",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := boot()
			if err != nil {
				return err
			}

			app := fiber.New(fiber.Config{
				AppName:      cfg.App.Name,
				ReadTimeout:  time.Second * 10,
				WriteTimeout: time.Second * 10,
				IdleTimeout:  time.Second * 60,
			})
			app.Use(recover.New())

			httpRouter.Router(app, httpRouter.RouterDeps{
				Snapshots: staticsite.NewSnapshotStore(cfg.Output.SnapshotPath),
				PublicDir: cfg.Output.PublicDir,
			})

			go func() {
				if err := app.Listen(cfg.HTTP.Addr()); err != nil {
					log.Error().Err(err).Msg("servidor HTTP finalizado")
				}
			}()
			log.Info().Str("addr", cfg.HTTP.Addr()).Msg("previsualización disponible")

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info().Msg("señal de apagado recibida, cerrando servidor...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("apagado del servidor")
			}
			return nil
		},
	}
}
