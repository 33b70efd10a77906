package stats

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sentinel/sentinel-backend/internal/dataset"
)

// aggregate is one independently computable statistic. fn runs only when
// every column in columns exists in the table; returning false omits the
// key from the bundle. No aggregate reads another's output, so the
// registry can be evaluated in any order.
type aggregate struct {
	key     string
	columns []string
	fn      func(t *dataset.Table) (interface{}, bool)
}

var registry = []aggregate{
	{"crimes_by_borough", []string{"BORO_NM"}, normalizedFreq("BORO_NM")},
	{"crimes_by_category", []string{"LAW_CAT_CD"}, normalizedFreq("LAW_CAT_CD")},
	{"top_10_offenses", []string{"OFNS_DESC"}, topFreq("OFNS_DESC", 10)},
	{"suspect_age_distribution", []string{"SUSP_AGE_GROUP"}, rawFreq("SUSP_AGE_GROUP")},
	{"suspect_race_distribution", []string{"SUSP_RACE"}, rawFreq("SUSP_RACE")},
	{"suspect_sex_distribution", []string{"SUSP_SEX"}, rawFreq("SUSP_SEX")},
	{"victim_age_distribution", []string{"VIC_AGE_GROUP"}, rawFreq("VIC_AGE_GROUP")},
	{"victim_race_distribution", []string{"VIC_RACE"}, rawFreq("VIC_RACE")},
	{"victim_sex_distribution", []string{"VIC_SEX"}, rawFreq("VIC_SEX")},
	{"crimes_by_time_of_day", []string{"TIME_OF_DAY"}, rawFreq("TIME_OF_DAY")},
	{"felonies_by_time_of_day", []string{"TIME_OF_DAY", "LAW_CAT_CD"}, felonyTimeOfDay},
	{"top_10_premises", []string{"PREM_TYP_DESC"}, topFreq("PREM_TYP_DESC", 10)},
	{"crimes_by_patrol_boro", []string{"PATROL_BORO"}, normalizedFreq("PATROL_BORO")},
	{"crimes_by_day_of_week", []string{"CMPLNT_FR_DT"}, dayOfWeek},
	{"response_time_stats", []string{"RESPONSE_TIME_HRS"}, responseTime},
	{"avg_severity_by_borough", []string{"CRIME_SEVERITY_SCORE", "BORO_NM"}, severityByBorough},
	{"suspect_info_known", []string{"SUSPECT_INFO_KNOWN"}, suspectInfoKnown},
}

// Compute evaluates every registered aggregate whose source columns exist.
// Missing columns only ever suppress their own aggregate.
func Compute(t *dataset.Table) *Bundle {
	b := &Bundle{
		TotalRecords: t.NumRows(),
		Columns:      t.Columns,
	}

	for _, agg := range registry {
		present := true
		for _, col := range agg.columns {
			if !t.HasColumn(col) {
				present = false
				break
			}
		}
		if !present {
			continue
		}
		if v, ok := agg.fn(t); ok {
			b.put(agg.key, v)
		}
	}

	return b
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// valueCounts builds a frequency table ordered by count descending, ties
// broken by first-encountered value. Empty cells are treated as missing.
func valueCounts(values []string) FreqTable {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			firstSeen[v] = i
		}
		counts[v]++
	}

	ft := make(FreqTable, 0, len(counts))
	for v, c := range counts {
		ft = append(ft, Entry{Value: v, Count: c})
	}
	sort.Slice(ft, func(i, j int) bool {
		if ft[i].Count != ft[j].Count {
			return ft[i].Count > ft[j].Count
		}
		return firstSeen[ft[i].Value] < firstSeen[ft[j].Value]
	})
	return ft
}

func normalizedValues(t *dataset.Table, col string) []string {
	values := t.Column(col)
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = normalize(v)
	}
	return out
}

func normalizedFreq(col string) func(*dataset.Table) (interface{}, bool) {
	return func(t *dataset.Table) (interface{}, bool) {
		return valueCounts(normalizedValues(t, col)), true
	}
}

func rawFreq(col string) func(*dataset.Table) (interface{}, bool) {
	return func(t *dataset.Table) (interface{}, bool) {
		return valueCounts(t.Column(col)), true
	}
}

func topFreq(col string, n int) func(*dataset.Table) (interface{}, bool) {
	return func(t *dataset.Table) (interface{}, bool) {
		ft := valueCounts(normalizedValues(t, col))
		if len(ft) > n {
			ft = ft[:n]
		}
		return ft, true
	}
}

func felonyTimeOfDay(t *dataset.Table) (interface{}, bool) {
	var times []string
	for _, row := range t.Rows {
		if normalize(row["LAW_CAT_CD"]) == "FELONY" {
			times = append(times, row["TIME_OF_DAY"])
		}
	}
	return valueCounts(times), true
}

// dateFormats covers the encodings seen in the complaint exports.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02T15:04:05",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// dayOfWeek buckets rows by weekday name; unparseable dates contribute to
// no bucket.
func dayOfWeek(t *dataset.Table) (interface{}, bool) {
	var days []string
	for _, v := range t.Column("CMPLNT_FR_DT") {
		if d, ok := parseDate(v); ok {
			days = append(days, d.Weekday().String())
		}
	}
	return valueCounts(days), true
}

// responseTime summarizes RESPONSE_TIME_HRS over parseable non-negative
// values; the whole aggregate is omitted when none remain.
func responseTime(t *dataset.Table) (interface{}, bool) {
	var values []float64
	for _, v := range t.Column("RESPONSE_TIME_HRS") {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || f < 0 {
			continue
		}
		values = append(values, f)
	}
	if len(values) == 0 {
		return nil, false
	}

	sum := 0.0
	max := values[0]
	for _, f := range values {
		sum += f
		if f > max {
			max = f
		}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		median = sorted[mid]
	} else {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return NumericSummary{
		Mean:   round2(sum / float64(len(values))),
		Median: round2(median),
		Max:    round2(max),
	}, true
}

// severityByBorough averages CRIME_SEVERITY_SCORE per borough. Rows with
// an unparseable score are left out of their group's mean; groups with no
// parseable scores are omitted. Group keys sort ascending.
func severityByBorough(t *dataset.Table) (interface{}, bool) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, row := range t.Rows {
		boro := row["BORO_NM"]
		if strings.TrimSpace(boro) == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(row["CRIME_SEVERITY_SCORE"]), 64)
		if err != nil {
			continue
		}
		sums[boro] += f
		counts[boro]++
	}

	groups := make([]string, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	gm := make(GroupMeans, 0, len(groups))
	for _, g := range groups {
		gm = append(gm, GroupMean{Group: g, Mean: round2(sums[g] / float64(counts[g]))})
	}
	return gm, true
}

// suspectInfoKnown keeps the source's asymmetric definition: "known" is
// the integer sum of parseable values, "unknown" counts exact zeros. The
// column is 0/1 in the dataset, where the sum equals the count of ones.
func suspectInfoKnown(t *dataset.Table) (interface{}, bool) {
	var sum float64
	var zeros int
	for _, v := range t.Column("SUSPECT_INFO_KNOWN") {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue
		}
		sum += f
		if f == 0 {
			zeros++
		}
	}
	return BinaryCount{Known: int(sum), Unknown: zeros}, true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
