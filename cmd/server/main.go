package main

import (
	"context"
	"flag"
	"holdemshot-server/internal/config"
	"holdemshot-server/internal/mux"
	"holdemshot-server/pkg/historian"
	"holdemshot-server/pkg/matchmaker"
	"holdemshot-server/pkg/room"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const connectTimeout = time.Second * 5

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	settings := room.Settings{CodeLength: cfg.CodeLength}

	var history mux.HistoryReader
	if cfg.Redis.URL != "" {
		h := setupHistorian(cfg)
		settings.Recorder = h
		history = h
	}

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), settings)
	mm := matchmaker.New(logrus.StandardLogger(), pitBoss, matchmaker.Options{
		Fallback: cfg.Fallback(),
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	listen := cfg.Addr
	if *addr != "" {
		listen = *addr
	}

	srv := &http.Server{
		Addr:         listen,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, mm, history))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).WithField("version", Version).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// fail fast if the configured Redis is unreachable
func setupHistorian(cfg config.Config) *historian.Historian {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := historian.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		logrus.WithError(err).Fatal("could not set up game history")
	}

	logrus.WithField("key", cfg.Redis.Key).Info("recording finished games")
	return historian.New(client, cfg.Redis.Key, cfg.Redis.MaxRecords)
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(config.Instance().Log.Format) == "json" || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
