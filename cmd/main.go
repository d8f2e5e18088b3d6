package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "devconnect/docs" // swagger spec
	"devconnect/internal/handlers"
	"devconnect/internal/logger"
	"devconnect/internal/repository"
	"devconnect/internal/repository/db"
	"devconnect/internal/server"
	"devconnect/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// @title           devconnect API
// @version         1.0
// @description     Social network REST API: users, auth, posts, likes and comments.

// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	tokenCfg, err := tokenConfig()
	if err != nil {
		log.Fatalw("invalid token config", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, tokenCfg)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetDefault("jwt.ttl_hours", int(service.DefaultTokenTTL.Hours()))
	// allow JWT_SECRET to override jwt.secret
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	return viper.ReadInConfig()
}

// tokenConfig builds the signing configuration injected into the auth service.
func tokenConfig() (service.TokenConfig, error) {
	secret := viper.GetString("jwt.secret")
	if secret == "" {
		return service.TokenConfig{}, errors.New("jwt.secret (or JWT_SECRET) must be set")
	}
	return service.TokenConfig{
		Secret: []byte(secret),
		TTL:    time.Duration(viper.GetInt("jwt.ttl_hours")) * time.Hour,
	}, nil
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
