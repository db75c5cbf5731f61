package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/antioquia-open-data/mortality-api/api"
	"github.com/antioquia-open-data/mortality-api/dashboard"
	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/logmodule"
	"github.com/antioquia-open-data/mortality-api/store"
	"github.com/antioquia-open-data/mortality-api/utils"
)

var (
	server       *api.Server
	mongoStore   store.MongoStore
	metricCloser io.Closer
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	_ = godotenv.Load()

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("mortality")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("data.source", "file")
	viper.SetDefault("i18n.default", "es")
	viper.SetDefault("metrics.prefix", "mortality")
	viper.SetDefault("metrics.interval", "10s")
}

// dataSource - the dataset is read from files unless data.source is mongo
func dataSource(ctx context.Context) (dataset.Source, error) {
	cfg := dataset.ConfigFrom(viper.GetViper(), "data")

	switch source := viper.GetString("data.source"); source {
	case "file", "":
		return dataset.NewFileSource(cfg), nil
	case "mongo":
		client, err := store.Connect(ctx, viper.GetString("mongo.conn"), viper.GetUint64("mongo.pool"))
		if err != nil {
			return nil, err
		}
		mongoStore = store.NewMongoStore(client, viper.GetString("mongo.database"))
		return mongoStore, nil
	default:
		return nil, fmt.Errorf("unknown data source %q", source)
	}
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown dashboard api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if mongoStore != nil {
			log.Info("Shutting down db store")
			mongoStore.Close()
		}

		if metricCloser != nil {
			_ = metricCloser.Close()
		}

		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Initialized i18n bundle")

	src, err := dataSource(initialCtx)
	if err != nil {
		log.WithField("prefix", "init").Panic(err)
	}

	data, err := dashboard.Load(initialCtx, src)
	if err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		log.WithField("prefix", "init").Fatal(err)
	}
	log.WithField("prefix", "init").
		WithField("dataset_id", data.ID()).
		WithField("rows", len(data.Rows())).
		Info("Loaded dataset")

	var scope tally.Scope
	scope, metricCloser = tally.NewRootScope(tally.ScopeOptions{
		Prefix:   viper.GetString("metrics.prefix"),
		Reporter: logmodule.NewStatsReporter(log.WithField("prefix", "metrics")),
	}, viper.GetDuration("metrics.interval"))

	// Init http server
	var pinger api.Pinger
	if mongoStore != nil {
		pinger = mongoStore
	}
	server = api.NewServer(dashboard.New(data), pinger, scope)
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
