package logmodule

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

// StatsReporter - tally reporter writing every reported metric as a log
// entry. Counters arrive as the delta since the previous report.
type StatsReporter struct {
	logger *log.Entry
}

// NewStatsReporter - reporter logging through the given entry
func NewStatsReporter(logger *log.Entry) *StatsReporter {
	return &StatsReporter{logger: logger}
}

func (r *StatsReporter) entry(kind, name string, tags map[string]string) *log.Entry {
	fields := log.Fields{
		"metric": name,
		"type":   kind,
	}
	for k, v := range tags {
		fields["tag_"+k] = v
	}
	return r.logger.WithFields(fields)
}

func (r *StatsReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.entry("counter", name, tags).WithField("value", value).Info("metric reported")
}

func (r *StatsReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.entry("gauge", name, tags).WithField("value", value).Info("metric reported")
}

func (r *StatsReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.entry("timer", name, tags).WithField("value", interval.Seconds()*1000).Debug("metric reported")
}

func (r *StatsReporter) ReportHistogramValueSamples(name string, tags map[string]string, buckets tally.Buckets, bucketLowerBound, bucketUpperBound float64, samples int64) {
	r.entry("histogram", name, tags).
		WithField("lower", bucketLowerBound).
		WithField("upper", bucketUpperBound).
		WithField("value", samples).
		Info("metric reported")
}

func (r *StatsReporter) ReportHistogramDurationSamples(name string, tags map[string]string, buckets tally.Buckets, bucketLowerBound, bucketUpperBound time.Duration, samples int64) {
	r.entry("histogram", name, tags).
		WithField("lower", bucketLowerBound.String()).
		WithField("upper", bucketUpperBound.String()).
		WithField("value", samples).
		Info("metric reported")
}

func (r *StatsReporter) Capabilities() tally.Capabilities {
	return r
}

func (r *StatsReporter) Reporting() bool {
	return true
}

func (r *StatsReporter) Tagging() bool {
	return true
}

func (r *StatsReporter) Flush() {}
