package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel/sentinel-backend/internal/dataset"
)

func singleColumn(col string, values ...string) *dataset.Table {
	rows := make([]dataset.Row, len(values))
	for i, v := range values {
		rows[i] = dataset.Row{col: v}
	}
	return dataset.FromRecords([]string{col}, rows)
}

func freqCount(ft FreqTable, value string) int {
	for _, e := range ft {
		if e.Value == value {
			return e.Count
		}
	}
	return 0
}

func TestCompute_MissingColumnOmitsOnlyItsAggregate(t *testing.T) {
	table := singleColumn("BORO_NM", "BROOKLYN", "QUEENS")

	b := Compute(table)

	assert.True(t, b.Has("crimes_by_borough"))
	assert.False(t, b.Has("crimes_by_category"))
	assert.False(t, b.Has("top_10_offenses"))
	assert.False(t, b.Has("response_time_stats"))
	// BORO_NM alone is not enough for the severity grouping
	assert.False(t, b.Has("avg_severity_by_borough"))
}

func TestCompute_TotalRecordsAndColumns(t *testing.T) {
	table := dataset.FromRecords([]string{"A", "B"}, []dataset.Row{
		{"A": "1", "B": "2"},
		{"A": "3", "B": "4"},
		{"A": "5", "B": "6"},
	})

	b := Compute(table)

	assert.Equal(t, 3, b.TotalRecords)
	assert.Equal(t, []string{"A", "B"}, b.Columns)
}

func TestCompute_FrequencyNormalizesAndConservesCounts(t *testing.T) {
	table := singleColumn("BORO_NM",
		"  brooklyn ", "BROOKLYN", "Brooklyn", "queens", "", "   ")

	b := Compute(table)
	ft, ok := b.Freq("crimes_by_borough")
	require.True(t, ok)

	assert.Equal(t, 3, freqCount(ft, "BROOKLYN"))
	assert.Equal(t, 1, freqCount(ft, "QUEENS"))

	// Sum across distinct values equals the number of non-empty cells
	total := 0
	for _, e := range ft {
		total += e.Count
	}
	assert.Equal(t, 4, total)
}

func TestCompute_FrequencyOrderedByCountThenFirstSeen(t *testing.T) {
	table := singleColumn("TIME_OF_DAY",
		"Evening", "Night", "Night", "Morning", "Evening", "Night")

	b := Compute(table)
	ft, ok := b.Freq("crimes_by_time_of_day")
	require.True(t, ok)

	require.Len(t, ft, 3)
	assert.Equal(t, Entry{Value: "Night", Count: 3}, ft[0])
	assert.Equal(t, Entry{Value: "Evening", Count: 2}, ft[1])
	assert.Equal(t, Entry{Value: "Morning", Count: 1}, ft[2])
}

func TestCompute_Top10Truncation(t *testing.T) {
	var values []string
	// 12 distinct offenses with descending frequencies 12..1
	for i := 0; i < 12; i++ {
		for j := 0; j <= i; j++ {
			values = append(values, fmt.Sprintf("OFFENSE_%02d", i))
		}
	}
	table := singleColumn("OFNS_DESC", values...)

	b := Compute(table)
	ft, ok := b.Freq("top_10_offenses")
	require.True(t, ok)

	require.Len(t, ft, 10)
	// Every retained count is >= any excluded count (excluded were 1 and 2)
	for _, e := range ft {
		assert.GreaterOrEqual(t, e.Count, 3)
	}
}

func TestCompute_FelonySubsetOfTimeOfDay(t *testing.T) {
	table := dataset.FromRecords(
		[]string{"TIME_OF_DAY", "LAW_CAT_CD"},
		[]dataset.Row{
			{"TIME_OF_DAY": "Night", "LAW_CAT_CD": "felony "},
			{"TIME_OF_DAY": "Night", "LAW_CAT_CD": "MISDEMEANOR"},
			{"TIME_OF_DAY": "Morning", "LAW_CAT_CD": "FELONY"},
			{"TIME_OF_DAY": "Night", "LAW_CAT_CD": "VIOLATION"},
		},
	)

	b := Compute(table)
	all, ok := b.Freq("crimes_by_time_of_day")
	require.True(t, ok)
	felonies, ok := b.Freq("felonies_by_time_of_day")
	require.True(t, ok)

	assert.Equal(t, 1, freqCount(felonies, "Night"))
	assert.Equal(t, 1, freqCount(felonies, "Morning"))
	for _, e := range felonies {
		assert.LessOrEqual(t, e.Count, freqCount(all, e.Value))
	}
}

func TestCompute_DayOfWeek(t *testing.T) {
	table := singleColumn("CMPLNT_FR_DT",
		"2024-03-11", // a Monday
		"2024-03-12",
		"not-a-date",
		"",
	)

	b := Compute(table)
	ft, ok := b.Freq("crimes_by_day_of_week")
	require.True(t, ok)

	assert.Equal(t, 1, freqCount(ft, "Monday"))
	assert.Equal(t, 1, freqCount(ft, "Tuesday"))

	total := 0
	for _, e := range ft {
		total += e.Count
	}
	assert.Equal(t, 2, total, "unparseable dates contribute to no bucket")
}

func TestCompute_ResponseTimeExcludesNegatives(t *testing.T) {
	table := singleColumn("RESPONSE_TIME_HRS", "-5", "2", "4", "6")

	b := Compute(table)
	v, ok := b.Get("response_time_stats")
	require.True(t, ok)
	summary := v.(NumericSummary)

	assert.Equal(t, 4.0, summary.Mean)
	assert.Equal(t, 4.0, summary.Median)
	assert.Equal(t, 6.0, summary.Max)
}

func TestCompute_ResponseTimeOmittedWhenNoValidValues(t *testing.T) {
	table := singleColumn("RESPONSE_TIME_HRS", "-5", "garbage", "")

	b := Compute(table)
	assert.False(t, b.Has("response_time_stats"))
}

func TestCompute_ResponseTimeEvenMedianAndRounding(t *testing.T) {
	table := singleColumn("RESPONSE_TIME_HRS", "1", "2", "3", "4.5")

	b := Compute(table)
	v, ok := b.Get("response_time_stats")
	require.True(t, ok)
	summary := v.(NumericSummary)

	assert.Equal(t, 2.5, summary.Median)
	assert.Equal(t, 2.63, summary.Mean)
	assert.Equal(t, 4.5, summary.Max)
}

func TestCompute_SeverityByBorough(t *testing.T) {
	table := dataset.FromRecords(
		[]string{"CRIME_SEVERITY_SCORE", "BORO_NM"},
		[]dataset.Row{
			{"BORO_NM": "BROOKLYN", "CRIME_SEVERITY_SCORE": "1"},
			{"BORO_NM": "BROOKLYN", "CRIME_SEVERITY_SCORE": "2"},
			{"BORO_NM": "QUEENS", "CRIME_SEVERITY_SCORE": "3"},
			{"BORO_NM": "QUEENS", "CRIME_SEVERITY_SCORE": "bad"},
			{"BORO_NM": "BRONX", "CRIME_SEVERITY_SCORE": ""},
		},
	)

	b := Compute(table)
	v, ok := b.Get("avg_severity_by_borough")
	require.True(t, ok)
	gm := v.(GroupMeans)

	// BRONX has no parseable scores and is omitted; keys sort ascending
	require.Len(t, gm, 2)
	assert.Equal(t, GroupMean{Group: "BROOKLYN", Mean: 1.5}, gm[0])
	assert.Equal(t, GroupMean{Group: "QUEENS", Mean: 3.0}, gm[1])
}

func TestCompute_SuspectInfoKnown(t *testing.T) {
	table := singleColumn("SUSPECT_INFO_KNOWN", "1", "1", "0", "0", "0", "oops")

	b := Compute(table)
	v, ok := b.Get("suspect_info_known")
	require.True(t, ok)
	bc := v.(BinaryCount)

	assert.Equal(t, 2, bc.Known)
	assert.Equal(t, 3, bc.Unknown)
}

func TestCompute_RawDistributionsSkipNormalization(t *testing.T) {
	table := singleColumn("SUSP_AGE_GROUP", "25-44", "25-44", "<18")

	b := Compute(table)
	ft, ok := b.Freq("suspect_age_distribution")
	require.True(t, ok)

	assert.Equal(t, 2, freqCount(ft, "25-44"))
	assert.Equal(t, 1, freqCount(ft, "<18"))
}
