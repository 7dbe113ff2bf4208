package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"cryptoherald/internal/config"
	"cryptoherald/internal/daemon"
	"cryptoherald/internal/http_api"
	"cryptoherald/internal/market"
	"cryptoherald/internal/notificator"
	"cryptoherald/internal/notify"
	"cryptoherald/internal/pricecache"
	"cryptoherald/internal/repository"
	"cryptoherald/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "cryptoherald",
		Usage: "Cryptoherald is a crypto market notification service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "postgres-user", Aliases: []string{"u"}, Usage: "Postgres user"},
			&cli.StringFlag{Name: "postgres-password", Aliases: []string{"p"}, Usage: "Postgres password"},
			&cli.StringFlag{Name: "postgres-host", Aliases: []string{"t"}, Usage: "Postgres host"},
			&cli.IntFlag{Name: "postgres-port", Aliases: []string{"P"}, Usage: "Postgres port"},
			&cli.StringFlag{Name: "postgres-db", Aliases: []string{"d"}, Usage: "Postgres database name"},
			&cli.StringFlag{Name: "redis-addr", Aliases: []string{"r"}, Usage: "Redis address"},
			&cli.StringFlag{Name: "notifications-config", Aliases: []string{"c"}, Usage: "Path to the notifications YAML file"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
		},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	// Override with flags if set
	if c.IsSet("postgres-user") {
		cfg.PostgresUser = c.String("postgres-user")
	}
	if c.IsSet("postgres-password") {
		cfg.PostgresPassword = c.String("postgres-password")
	}
	if c.IsSet("postgres-host") {
		cfg.PostgresHost = c.String("postgres-host")
	}
	if c.IsSet("postgres-port") {
		cfg.PostgresPort = c.Int("postgres-port")
	}
	if c.IsSet("postgres-db") {
		cfg.PostgresDB = c.String("postgres-db")
	}
	if c.IsSet("redis-addr") {
		cfg.RedisAddr = c.String("redis-addr")
	}
	if c.IsSet("notifications-config") {
		cfg.NotificationsConfig = c.String("notifications-config")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}

	// Load notification settings, falling back to defaults when no file exists
	settings, err := loadSettings(cfg.NotificationsConfig, log)
	if err != nil {
		return err
	}

	// Initialize database
	db, err := repository.NewPostgresDB(cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresHost, cfg.PostgresPort, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize price cache
	cache, err := pricecache.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}
	defer cache.Close()

	// Initialize notification channels
	telegramNotif, err := notificator.NewTelegramNotificator(log, cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		return fmt.Errorf("failed to initialize telegram notificator: %v", err)
	}
	var emailNotif *notificator.EmailNotificator
	if cfg.SMTPRecipient != "" {
		emailNotif = notificator.NewEmailNotificator(log, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPSender, cfg.SMTPRecipient)
	}
	notif := notificator.NewNotificator(log, db, telegramNotif, emailNotif)

	// Initialize market data sources
	provider := market.NewBinanceProvider(log)
	fearGreed := market.NewFearGreedService(log)

	// Create Herald instance
	herald := daemon.NewHerald(db, notif, cache, provider, fearGreed, settings, log, cfg)

	// Initialize API server
	apiServer := http_api.NewHTTPServer(herald, cfg.APIPort, log)

	go apiServer.Start()

	// Shut everything down on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stop
		log.Info("Received signal, shutting down", "signal", sig.String())
		if err := apiServer.Shutdown(); err != nil {
			log.Error("Failed to shut down HTTP server: ", err)
		}
		herald.Shutdown()
	}()

	// Start the application
	herald.Start()

	return nil
}

// loadSettings reads the notifications YAML file and validates it. Errors in
// the file abort startup, warnings are only logged.
func loadSettings(path string, log *logger.Logger) (*notify.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warn("Notifications config not found, using defaults", "path", path)
		return notify.DefaultSettings(), nil
	}

	settings, err := notify.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications config: %v", err)
	}

	result := notify.ValidateSettings(settings)
	for _, warning := range result.Warnings {
		log.Warn("Notifications config: " + warning)
	}
	if !result.OK() {
		for _, e := range result.Errors {
			log.Error("Notifications config: " + e)
		}
		return nil, fmt.Errorf("notifications config %s has %d error(s)", path, len(result.Errors))
	}

	log.Info("Notifications config loaded", "path", path, "coins", len(settings.Coins))
	return settings, nil
}
