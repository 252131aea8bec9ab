package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"vapor/internal/config"
	"vapor/internal/database"
	"vapor/internal/events"
	"vapor/internal/models"
	"vapor/internal/repositories"
	"vapor/internal/server"
	"vapor/internal/services"
	"vapor/pkg/kafka"
	"vapor/pkg/rabbitmq"
)

func orderCommand() *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "run the order API",
		Action: func(c *cli.Context) error {
			cfg, db, err := bootstrap(c, true)
			if err != nil {
				return err
			}
			defer closeDB(db)

			bus, err := newBroker(cfg)
			if err != nil {
				return err
			}
			if bus != nil {
				defer closeWithLog("event broker", bus.Close)
			}

			userRepo := repositories.NewGORMUserRepository(db)
			gameRepo := repositories.NewGORMGameRepository(db)
			collectionRepo := repositories.NewGORMCollectionRepository(db)

			app := server.NewOrderApp(server.Options{CORSOrigin: cfg.CORSOrigin}, server.OrderServices{
				Auth:   services.NewAuthService(userRepo, tokenConfig(cfg), bus),
				Orders: services.NewOrderService(repositories.NewGORMOrderRepository(db), userRepo, gameRepo, collectionRepo, bus),
				Games:  services.NewGameService(gameRepo),
			})

			g, ctx := errgroup.WithContext(c.Context)
			serve(ctx, g, app, cfg)
			return g.Wait()
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "run the user API and the order.created consumer",
		Action: func(c *cli.Context) error {
			cfg, db, err := bootstrap(c, true)
			if err != nil {
				return err
			}
			defer closeDB(db)

			bus, err := newBroker(cfg)
			if err != nil {
				return err
			}
			if bus != nil {
				defer closeWithLog("event broker", bus.Close)
			}

			userRepo := repositories.NewGORMUserRepository(db)
			gameRepo := repositories.NewGORMGameRepository(db)
			collectionRepo := repositories.NewGORMCollectionRepository(db)

			app := server.NewUserApp(server.Options{CORSOrigin: cfg.CORSOrigin}, server.UserServices{
				Auth:  services.NewAuthService(userRepo, tokenConfig(cfg), bus),
				Users: services.NewUserService(userRepo, gameRepo, collectionRepo),
			})

			g, ctx := errgroup.WithContext(c.Context)
			serve(ctx, g, app, cfg)
			if bus != nil {
				library := services.NewLibraryService(userRepo, gameRepo, collectionRepo)
				g.Go(func() error {
					return bus.Subscribe(ctx, events.OrderCreated, library.HandleOrderCreated)
				})
			} else {
				log.Println("EVENT_BROKER is empty, purchased games will not be added to libraries")
			}
			return g.Wait()
		},
	}
}

func frontendCommand() *cli.Command {
	return &cli.Command{
		Name:  "frontend",
		Usage: "serve the static storefront",
		Action: func(c *cli.Context) error {
			cfg, _, err := bootstrap(c, false)
			if err != nil {
				return err
			}

			app := server.NewFrontendApp(server.Options{CORSOrigin: cfg.CORSOrigin}, cfg.StaticDir)

			g, ctx := errgroup.WithContext(c.Context)
			serve(ctx, g, app, cfg)
			return g.Wait()
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update the database schema and exit",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(c.Context, cfg.DatabaseDriver, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Printf("Database migrated (%s)", cfg.DatabaseDriver)
			return nil
		},
	}
}

func grantRoleCommand() *cli.Command {
	return &cli.Command{
		Name:  "grant-role",
		Usage: "give a registered user a role, e.g. admin",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "role", Value: models.RoleAdmin},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(c.Context, cfg.DatabaseDriver, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer closeDB(db)
			if err := database.Migrate(db); err != nil {
				return err
			}

			auth := services.NewAuthService(repositories.NewGORMUserRepository(db), tokenConfig(cfg), nil)
			if err := auth.GrantRole(c.String("email"), c.String("role")); err != nil {
				return err
			}
			log.Printf("Granted role %s to %s; it applies to tokens issued from now on", c.String("role"), c.String("email"))
			return nil
		},
	}
}

// bootstrap loads the configuration and, when withDB is set, opens and
// migrates the database. The caller owns the returned connection.
func bootstrap(c *cli.Context, withDB bool) (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if port := c.String("port"); port != "" {
		cfg.AppPort = port
	}
	if !withDB {
		return cfg, nil, nil
	}

	if err := cfg.RequireJWTSecret(); err != nil {
		return config.Config{}, nil, err
	}

	db, err := database.Open(c.Context, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

// broker is implemented by both the RabbitMQ and the Kafka client.
type broker interface {
	events.Publisher
	events.Subscriber
	Close() error
}

// newBroker returns nil when no broker is configured.
func newBroker(cfg config.Config) (broker, error) {
	switch cfg.EventBroker {
	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:         cfg.RabbitMQURL,
			Exchange:    cfg.RabbitMQExchange,
			QueuePrefix: cfg.ConsumerGroup,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case "kafka":
		b, err := kafka.NewBroker(cfg.KafkaBrokers, cfg.ConsumerGroup)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, nil
	}
}

func tokenConfig(cfg config.Config) services.TokenConfig {
	return services.TokenConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}
}

// serve runs app on cfg.AppPort within g and shuts it down once ctx is done.
func serve(ctx context.Context, g *errgroup.Group, app *fiber.App, cfg config.Config) {
	g.Go(func() error {
		log.Printf("Starting %s on %s", app.Config().AppName, cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			return fmt.Errorf("%s: listen failed: %w", app.Config().AppName, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("Shutting down %s...", app.Config().AppName)
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: shutdown failed: %w", app.Config().AppName, err)
		}
		log.Printf("%s gracefully stopped", app.Config().AppName)
		return nil
	})
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting sql.DB: %v", err)
		return
	}
	closeWithLog("database", sqlDB.Close)
}

func closeWithLog(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Printf("Error closing %s: %v", name, err)
	}
}
