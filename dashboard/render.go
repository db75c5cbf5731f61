package dashboard

import (
	"strconv"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/text/language"

	"github.com/antioquia-open-data/mortality-api/consts"
	"github.com/antioquia-open-data/mortality-api/schema"
	"github.com/antioquia-open-data/mortality-api/stats"
	"github.com/antioquia-open-data/mortality-api/utils"
)

// color scale names understood by the chart and map widgets
const (
	ScaleReds  = "Reds"
	ScaleOrRd  = "OrRd"
	ScaleBlues = "Blues"
)

var englishBase, _ = language.English.Base()

// MapLayer - choropleth input, one feature per municipality
type MapLayer struct {
	Title      string                     `json:"title"`
	Label      string                     `json:"label"`
	Metric     schema.Metric              `json:"metric"`
	Year       schema.YearSelector        `json:"year"`
	ColorScale string                     `json:"color_scale"`
	Range      *schema.ValueRange         `json:"range"`
	Features   *geojson.FeatureCollection `json:"features"`
}

// Chart - ranked bar chart input
type Chart struct {
	Title      string            `json:"title"`
	Label      string            `json:"label"`
	ColorScale string            `json:"color_scale"`
	List       schema.RankedList `json:"list"`
}

// PresentationModel - everything one year and metric selection shows
type PresentationModel struct {
	Year    schema.YearSelector `json:"year"`
	Metric  schema.Metric       `json:"metric"`
	Map     MapLayer            `json:"map"`
	Highest Chart               `json:"highest"`
	Lowest  Chart               `json:"lowest"`
}

// Dashboard - presentation models computed from a data context on every call
type Dashboard struct {
	data *DataContext
}

func New(data *DataContext) *Dashboard {
	return &Dashboard{data: data}
}

func (d *Dashboard) Data() *DataContext {
	return d.data
}

// Render - map, highest and lowest rankings of one selection
func (d *Dashboard) Render(year schema.YearSelector, metric schema.Metric, l *i18n.Localizer) PresentationModel {
	return PresentationModel{
		Year:    year,
		Metric:  metric,
		Map:     d.MapLayer(year, metric, l),
		Highest: d.Ranking(year, metric, schema.Descending, l),
		Lowest:  d.Ranking(year, metric, schema.Ascending, l),
	}
}

// MapLayer - aggregated value and geometry of every municipality
func (d *Dashboard) MapLayer(year schema.YearSelector, metric schema.Metric, l *i18n.Localizer) MapLayer {
	rows := stats.Aggregate(d.data.Rows(), metric, year)
	geometries := stats.Geometries(d.data.Rows())
	codes := municipalityCodes(d.data.Rows())

	fc := geojson.NewFeatureCollection()
	var bound orb.Bound
	for _, r := range rows {
		g := geometries[r.MunicipalityName]
		if g == nil {
			continue
		}

		f := geojson.NewFeature(g)
		f.ID = r.MunicipalityName
		f.Properties["municipality"] = r.MunicipalityName
		f.Properties["code"] = codes[r.MunicipalityName]
		f.Properties["key"] = consts.NameKey(r.MunicipalityName)
		f.Properties["value"] = r.MetricValue
		f.Properties["display"] = Display(r.MetricValue)
		fc.Append(f)

		if len(fc.Features) == 1 {
			bound = g.Bound()
		} else {
			bound = bound.Union(g.Bound())
		}
	}
	if len(fc.Features) > 0 {
		fc.BBox = geojson.NewBBox(bound)
	}

	layer := MapLayer{
		Title:      utils.Localize(l, mapTitle(metric)),
		Label:      utils.Localize(l, metricLabel(metric)),
		Metric:     metric,
		Year:       year,
		ColorScale: mapScale(metric),
		Features:   fc,
	}
	if r, ok := stats.ValueRange(rows); ok {
		layer.Range = &r
	}
	return layer
}

// Ranking - top ten municipalities in the given direction
func (d *Dashboard) Ranking(year schema.YearSelector, metric schema.Metric, direction schema.Direction, l *i18n.Localizer) Chart {
	return Chart{
		Title:      utils.Localize(l, rankingTitle(metric, direction)),
		Label:      utils.Localize(l, metricLabel(metric)),
		ColorScale: rankingScale(direction),
		List:       stats.Ranking(d.data.Rows(), metric, year, direction, stats.DefaultLimit),
	}
}

// SummaryTable - six number summaries over the whole joined table
func (d *Dashboard) SummaryTable() []schema.Summary {
	return stats.SummaryTable(d.data.Rows())
}

// History - every year of the municipality with the given name key or code
func (d *Dashboard) History(key string, l *i18n.Localizer) (schema.MunicipalityHistory, bool) {
	h, ok := stats.History(d.data.Rows(), func(r schema.MortalityRecord) bool {
		return r.MunicipalityCode == key || consts.NameKey(r.MunicipalityName) == key
	})
	h.RegionName = regionNamer(l)(h.RegionName)
	return h, ok
}

// regionNamer - subregion names are kept in spanish unless the localizer
// resolves to english and the subregion is known
func regionNamer(l *i18n.Localizer) func(string) string {
	if base, _ := utils.Language(l).Base(); base != englishBase {
		return func(region string) string { return region }
	}

	return func(region string) string {
		if en, err := consts.SubregionEnglishName(region); err == nil {
			return en
		}
		return region
	}
}

// Display - value as shown to people, rounded to two decimals
func Display(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func municipalityCodes(rows []schema.JoinedRow) map[string]string {
	codes := map[string]string{}
	for _, r := range rows {
		if _, ok := codes[r.MunicipalityName]; !ok {
			codes[r.MunicipalityName] = r.MunicipalityCode
		}
	}
	return codes
}

func mapTitle(metric schema.Metric) string {
	if metric == schema.MetricCaseSum {
		return "title_cases_map"
	}
	return "title_rate_map"
}

func metricLabel(metric schema.Metric) string {
	if metric == schema.MetricCaseSum {
		return "label_cases"
	}
	return "label_rate"
}

func rankingTitle(metric schema.Metric, direction schema.Direction) string {
	switch {
	case metric == schema.MetricCaseSum && direction == schema.Ascending:
		return "title_cases_lowest"
	case metric == schema.MetricCaseSum:
		return "title_cases_highest"
	case direction == schema.Ascending:
		return "title_rate_lowest"
	}
	return "title_rate_highest"
}

func mapScale(metric schema.Metric) string {
	if metric == schema.MetricCaseSum {
		return ScaleOrRd
	}
	return ScaleReds
}

func rankingScale(direction schema.Direction) string {
	if direction == schema.Ascending {
		return ScaleBlues
	}
	return ScaleReds
}

func (d *Dashboard) DatasetID() string {
	return d.data.ID()
}

func (d *Dashboard) Information() Information {
	return d.data.Information()
}

func (d *Dashboard) Years() []int {
	return d.data.Years()
}
