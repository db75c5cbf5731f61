package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/store"
)

const (
	datasetURL      = "https://www.datos.gov.co/api/views/fuc4-tvui/rows.csv?accessType=DOWNLOAD"
	defaultSchedule = "0 3 * * *"
	defaultTimeout  = 5 * time.Minute
)

func initLog() *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		level.SetLevel(zapcore.DebugLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named("crawler")
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

	viper.SetDefault("crawler.url", datasetURL)
	viper.SetDefault("crawler.schedule", defaultSchedule)
	viper.SetDefault("crawler.timeout", defaultTimeout)
}

func main() {
	var configFile string
	var once bool

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.BoolVar(&once, "once", false, "[optional] fetch once and exit")
	flag.Parse()

	loadConfig(configFile)

	logger := initLog()
	defer func() { _ = logger.Sync() }()

	cfg, output, err := fetchConfig()
	if err != nil {
		logger.Fatal("invalid crawler configuration", zap.Error(err))
	}

	var mortalityStore store.MongoStore
	if viper.GetString("data.source") == "mongo" {
		client, err := store.Connect(context.Background(), viper.GetString("mongo.conn"), viper.GetUint64("mongo.pool"))
		if err != nil {
			logger.Fatal("connect mongo database with error", zap.Error(err))
		}
		mortalityStore = store.NewMongoStore(client, viper.GetString("mongo.database"))
		defer mortalityStore.Close()
	}

	var fetcher Cron = newDatasetFetcher(viper.GetString("crawler.url"), output, cfg, mortalityStore, logger, viper.GetDuration("crawler.timeout"))

	if once {
		fetcher.Run()
		return
	}

	c := cron.New(cron.WithLogger(cronLogger{logger}))
	if _, err := c.AddJob(viper.GetString("crawler.schedule"), cron.NewChain(cron.SkipIfStillRunning(cronLogger{logger})).Then(fetcher)); err != nil {
		logger.Fatal("invalid crawler schedule", zap.String("schedule", viper.GetString("crawler.schedule")), zap.Error(err))
	}
	c.Start()
	logger.Info("crawler started", zap.String("schedule", viper.GetString("crawler.schedule")), zap.String("output", output))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	logger.Info("crawler stopping")
	<-c.Stop().Done()
}

// fetchConfig - loader settings used to validate a download and the path it
// replaces, crawler.output falls back to data.records
func fetchConfig() (dataset.Config, string, error) {
	cfg := dataset.ConfigFrom(viper.GetViper(), "data")

	output := viper.GetString("crawler.output")
	if output == "" {
		output = cfg.Records
	}
	if output == "" {
		return cfg, "", fmt.Errorf("no output path, set crawler.output or data.records")
	}
	return cfg, output, nil
}

// cronLogger - cron.Logger backed by zap
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
