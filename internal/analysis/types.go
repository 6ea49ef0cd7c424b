package analysis

// Report is the top-level structure for the listening summary report.
type Report struct {
	Metadata   ReportMetadata `yaml:"metadata" json:"metadata"`
	Totals     Totals         `yaml:"totals" json:"totals"`
	TopArtists []ArtistStat   `yaml:"top_artists" json:"top_artists"`
	TopTracks  []TrackStat    `yaml:"top_tracks" json:"top_tracks"`
	Monthly    []MonthStat    `yaml:"monthly" json:"monthly"`
	Patterns   Patterns       `yaml:"listening_patterns" json:"listening_patterns"`
}

type ReportMetadata struct {
	GeneratedDate string `yaml:"generated_date" json:"generated_date"`
	Period        string `yaml:"period" json:"period"`
	Years         []int  `yaml:"years,omitempty" json:"years,omitempty"`
}

type Totals struct {
	Plays           int     `yaml:"plays" json:"plays"`
	Hours           float64 `yaml:"hours" json:"hours"`
	DistinctArtists int     `yaml:"distinct_artists" json:"distinct_artists"`
	DistinctTracks  int     `yaml:"distinct_tracks" json:"distinct_tracks"`
	SkippedRecords  int     `yaml:"skipped_records" json:"skipped_records"`
	FirstPlayed     string  `yaml:"first_played,omitempty" json:"first_played,omitempty"`
	LastPlayed      string  `yaml:"last_played,omitempty" json:"last_played,omitempty"`
}

type ArtistStat struct {
	Name      string   `yaml:"name" json:"name"`
	Hours     float64  `yaml:"hours" json:"hours"`
	TopTracks []string `yaml:"top_tracks,omitempty" json:"top_tracks,omitempty"`
}

type TrackStat struct {
	Name  string  `yaml:"name" json:"name"`
	Hours float64 `yaml:"hours" json:"hours"`
}

type MonthStat struct {
	Month string  `yaml:"month" json:"month"`
	Hours float64 `yaml:"hours" json:"hours"`
}

type Patterns struct {
	BusiestWeekday string  `yaml:"busiest_weekday,omitempty" json:"busiest_weekday,omitempty"`
	BusiestHour    int     `yaml:"busiest_hour" json:"busiest_hour"`
	BusiestMonth   string  `yaml:"busiest_month,omitempty" json:"busiest_month,omitempty"`
	ZeroLengthRate float64 `yaml:"zero_length_play_rate" json:"zero_length_play_rate"`
}
