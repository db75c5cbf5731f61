package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/antioquia-open-data/mortality-api/dashboard"
	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/schema"
	"github.com/antioquia-open-data/mortality-api/stats"
	"github.com/antioquia-open-data/mortality-api/store"
)

const commandTimeout = 10 * time.Minute

var (
	configFile string
	records    string
	boundaries string
	prejoined  string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "datactl",
		Short:         "Inspect and import the Antioquia mortality dataset",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfig(configFile)
			initLog()
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path of configuration file")
	root.PersistentFlags().StringVar(&records, "records", "", "mortality table, overrides data.records")
	root.PersistentFlags().StringVar(&boundaries, "boundaries", "", "boundary file, overrides data.boundaries")
	root.PersistentFlags().StringVar(&prejoined, "prejoined", "", "prejoined GeoJSON, overrides data.prejoined")

	root.AddCommand(newMigrateCmd(), newImportCmd(), newSummaryCmd(), newRankCmd(), newLocateCmd())
	return root
}

func dataConfig() dataset.Config {
	cfg := dataset.ConfigFrom(viper.GetViper(), "data")

	if records != "" {
		cfg.Records = records
	}
	if boundaries != "" {
		cfg.Boundaries = boundaries
	}
	if prejoined != "" {
		cfg.Prejoined = prejoined
	}
	return cfg
}

func connectStore(ctx context.Context) (store.MongoStore, error) {
	client, err := store.Connect(ctx, viper.GetString("mongo.conn"), viper.GetUint64("mongo.pool"))
	if err != nil {
		return nil, err
	}
	return store.NewMongoStore(client, viper.GetString("mongo.database")), nil
}

// loadContext - joined dataset from the configured source
func loadContext(ctx context.Context) (*dashboard.DataContext, error) {
	cfg := dataConfig()
	if viper.GetString("data.source") == "mongo" && records == "" && prejoined == "" {
		s, err := connectStore(ctx)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return dashboard.Load(ctx, s)
	}
	return dashboard.Load(ctx, dataset.NewFileSource(cfg))
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the mongo indexes of the record and boundary collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			client, err := store.Connect(ctx, viper.GetString("mongo.conn"), viper.GetUint64("mongo.pool"))
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			if err := schema.NewMongoDBIndexer(ctx, client.Database(viper.GetString("mongo.database"))).IndexAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "indexes created")
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the dataset files and replace the mongo collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			recs, bounds, err := dataset.NewFileSource(dataConfig()).Load(ctx)
			if err != nil {
				return err
			}

			client, err := store.Connect(ctx, viper.GetString("mongo.conn"), viper.GetUint64("mongo.pool"))
			if err != nil {
				return err
			}
			s := store.NewMongoStore(client, viper.GetString("mongo.database"))
			defer s.Close()

			if err := schema.NewMongoDBIndexer(ctx, client.Database(viper.GetString("mongo.database"))).IndexAll(); err != nil {
				return err
			}

			nr, err := s.ImportRecords(ctx, recs)
			if err != nil {
				return err
			}
			nb, err := s.ImportBoundaries(ctx, bounds)
			if err != nil {
				return err
			}

			log.WithField("prefix", "import").
				WithField("records", nr).
				WithField("boundaries", nb).
				Info("dataset imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records and %d boundaries\n", nr, nb)
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the six number summary of both numeric columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadContext(cmd.Context())
			if err != nil {
				return err
			}

			report := data.Report()
			fmt.Fprintf(cmd.OutOrStdout(), "dataset %s: %d records, %d joined, %d unmatched\n",
				data.ID(), report.Records, report.Matched, report.UnmatchedRecords)
			return writeSummary(cmd.OutOrStdout(), stats.SummaryTable(data.Rows()))
		},
	}
}

func writeSummary(out io.Writer, summaries []schema.Summary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "variable\tcount\tmin\tq1\tmedian\tmean\tq3\tmax")
	for _, s := range summaries {
		if s.NoData {
			fmt.Fprintf(w, "%s\t0\t-\t-\t-\t-\t-\t-\n", s.Variable)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n", s.Variable, s.Count,
			dashboard.Display(s.Min), dashboard.Display(s.Q1), dashboard.Display(s.Median),
			dashboard.Display(s.Mean), dashboard.Display(s.Q3), dashboard.Display(s.Max))
	}
	return w.Flush()
}

func newRankCmd() *cobra.Command {
	var metric, direction, year string
	var limit int

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the municipalities with the highest or lowest metric value",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := schema.ParseMetric(metric)
			if err != nil {
				return err
			}
			d, err := schema.ParseDirection(direction)
			if err != nil {
				return err
			}
			y, err := schema.ParseYearSelector(year)
			if err != nil {
				return err
			}

			data, err := loadContext(cmd.Context())
			if err != nil {
				return err
			}

			ranked := stats.Ranking(data.Rows(), m, y, d, limit)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "#\tmunicipality\t%s\n", m.Column())
			for i, r := range ranked.Rows {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, r.MunicipalityName, dashboard.Display(r.MetricValue))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&metric, "metric", string(schema.MetricRateMean), "rate_mean or case_sum")
	cmd.Flags().StringVar(&direction, "direction", string(schema.Descending), "descending or ascending")
	cmd.Flags().StringVar(&year, "year", schema.AllYearsLabel, "a year or all")
	cmd.Flags().IntVar(&limit, "limit", stats.DefaultLimit, "maximum number of rows")
	return cmd
}

func newLocateCmd() *cobra.Command {
	var lon, lat float64

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Find the municipality containing a point in the mongo boundary collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			s, err := connectStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			b, err := s.Locate(ctx, lon, lat)
			if errors.Is(err, store.ErrBoundaryNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "no municipality at %f,%f\n", lon, lat)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", b.MunicipalityCode, b.MunicipalityName)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in WGS84")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in WGS84")
	_ = cmd.MarkFlagRequired("lon")
	_ = cmd.MarkFlagRequired("lat")
	return cmd
}
