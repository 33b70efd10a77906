package prompt

import (
	"fmt"
	"strings"

	"github.com/sentinel/sentinel-backend/internal/stats"
)

const header = `You are a data analyst assistant for the NYPD Sentinel Pilot 2025 crime dataset.
You have been given pre-computed statistics from a cleaned crime complaints CSV file.
Use ONLY the statistics provided below to answer user questions.
Be specific, cite numbers, and give clear insights.
If a question cannot be answered from the available stats, say so honestly.`

// section pairs a rendered heading with its bundle key. Order is fixed;
// a missing key renders as "Not available" under its heading.
type section struct {
	title string
	key   string
}

var sections = []section{
	{"CRIMES BY BOROUGH", "crimes_by_borough"},
	{"CRIMES BY LEGAL CATEGORY", "crimes_by_category"},
	{"TOP 10 OFFENSE TYPES", "top_10_offenses"},
	{"CRIMES BY TIME OF DAY", "crimes_by_time_of_day"},
	{"FELONIES BY TIME OF DAY", "felonies_by_time_of_day"},
	{"TOP 10 PREMISES", "top_10_premises"},
	{"CRIMES BY PATROL BOROUGH", "crimes_by_patrol_boro"},
	{"SUSPECT AGE", "suspect_age_distribution"},
	{"CRIMES BY DAY OF WEEK", "crimes_by_day_of_week"},
	{"SUSPECT RACE", "suspect_race_distribution"},
	{"SUSPECT SEX", "suspect_sex_distribution"},
	{"VICTIM AGE", "victim_age_distribution"},
	{"VICTIM RACE", "victim_race_distribution"},
	{"VICTIM SEX", "victim_sex_distribution"},
	{"RESPONSE TIME STATS", "response_time_stats"},
	{"AVG SEVERITY BY BOROUGH (1=Violation 2=Misdemeanor 3=Felony)", "avg_severity_by_borough"},
	{"SUSPECT INFO KNOWN vs UNKNOWN", "suspect_info_known"},
}

// Build renders the system prompt for the chat model. Pure function of the
// bundle: the same bundle always yields byte-identical output.
func Build(b *stats.Bundle) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n=== DATASET OVERVIEW ===\n")
	fmt.Fprintf(&sb, "Total Records: %d\n", b.TotalRecords)
	fmt.Fprintf(&sb, "Columns: %s\n", strings.Join(b.Columns, ", "))

	for _, sec := range sections {
		fmt.Fprintf(&sb, "\n=== %s ===\n", sec.title)
		v, ok := b.Get(sec.key)
		if !ok {
			sb.WriteString("Not available\n")
			continue
		}
		sb.WriteString(renderValue(v))
	}

	sb.WriteString("\n=== REMAINING NULL COUNTS ===\nNone")
	return sb.String()
}

func renderValue(v interface{}) string {
	var sb strings.Builder
	switch val := v.(type) {
	case stats.FreqTable:
		for _, e := range val {
			fmt.Fprintf(&sb, "%s: %d\n", e.Value, e.Count)
		}
	case stats.GroupMeans:
		for _, g := range val {
			fmt.Fprintf(&sb, "%s: %.2f\n", g.Group, g.Mean)
		}
	case stats.NumericSummary:
		fmt.Fprintf(&sb, "Mean: %.2f hours\n", val.Mean)
		fmt.Fprintf(&sb, "Median: %.2f hours\n", val.Median)
		fmt.Fprintf(&sb, "Max: %.2f hours\n", val.Max)
	case stats.BinaryCount:
		fmt.Fprintf(&sb, "Known: %d\n", val.Known)
		fmt.Fprintf(&sb, "Unknown: %d\n", val.Unknown)
	default:
		fmt.Fprintf(&sb, "%v\n", val)
	}
	return sb.String()
}
