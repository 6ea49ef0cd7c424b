package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
)

var (
	reportArtists         int
	reportTracks          int
	reportTracksPerArtist int
)

var reportCmd = &cobra.Command{
	Use:   "report [from (optional)] [to (optional)]",
	Short: "Generates a listening summary report",
	Long:  `Analyzes your streaming history to generate a YAML report of totals, top artists and tracks, monthly hours and listening patterns.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := runReport(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntVar(&reportArtists, "artists", 20, "Number of top artists to include")
	reportCmd.Flags().IntVar(&reportTracks, "tracks", 20, "Number of top tracks to include")
	reportCmd.Flags().IntVar(&reportTracksPerArtist, "tracks-per-artist", 3, "Number of top tracks listed under each artist")
}

func runReport(cmd *cobra.Command, args []string) error {
	events, result, start, end, err := loadEvents(cmd, args)
	if err != nil {
		return err
	}

	report := analysis.Summarize(events, analysis.SummaryOptions{
		TopArtists:      reportArtists,
		TopTracks:       reportTracks,
		TracksPerArtist: reportTracksPerArtist,
		SkippedRecords:  result.Skipped,
		Start:           start,
		End:             end,
		Years:           viper.GetIntSlice("year"),
	})
	return writeReport(cmd.OutOrStdout(), report)
}

func writeReport(out io.Writer, report *analysis.Report) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return encoder.Close()
}
