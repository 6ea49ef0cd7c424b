/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var (
	limitArtists         int
	limitAlbums          int
	limitTracks          int
	limitTracksPerArtist int
)

var topNCmd = &cobra.Command{
	Use:   "top-n [from (optional)] [to (optional)]",
	Short: "Generates a textual summary of music taste",
	Long:  `Generates a plain text report of top artists, albums and tracks over a specified period.`,
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		events, _, start, end, err := loadEvents(cmd, args)
		if err == nil {
			err = printTopN(cmd.OutOrStdout(), events, start, end)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topNCmd)
	topNCmd.Flags().IntVar(&limitArtists, "artists", 10, "Number of top artists to show")
	topNCmd.Flags().IntVar(&limitAlbums, "albums", 10, "Number of top albums to show")
	topNCmd.Flags().IntVar(&limitTracks, "tracks", 10, "Number of top tracks to show")
	topNCmd.Flags().IntVar(&limitTracksPerArtist, "artist-tracks", 3, "Number of top tracks to show for each artist")
}

func printTopN(out io.Writer, events *history.Collection, start, end time.Time) error {
	fmt.Fprintf(out, "Listening Report\n")
	fmt.Fprintf(out, "Period: %s\n", describeRange(start, end))
	fmt.Fprintf(out, "Total Plays: %d\n", events.Len())
	fmt.Fprintf(out, "Total Hours: %s\n\n", formatHours(events.TotalHours()))

	if limitArtists > 0 {
		fmt.Fprintf(out, "## Top %d Artists\n", limitArtists)
		for i, artist := range analysis.TopArtists(events, limitArtists) {
			tracks := artistTopTracks(events, artist.Key, limitTracksPerArtist)
			if tracks != "" {
				fmt.Fprintf(out, "%d. %s (%sh) - [%s]\n", i+1, artist.Key, formatHours(artist.Hours), tracks)
			} else {
				fmt.Fprintf(out, "%d. %s (%sh)\n", i+1, artist.Key, formatHours(artist.Hours))
			}
		}
		fmt.Fprintln(out)
	}

	if limitAlbums > 0 {
		fmt.Fprintf(out, "## Top %d Albums\n", limitAlbums)
		for i, album := range analysis.TopAlbums(events, limitAlbums) {
			fmt.Fprintf(out, "%d. %s - %s (%sh)\n", i+1, album.Key.Name, album.Key.Artist, formatHours(album.Hours))
		}
		fmt.Fprintln(out)
	}

	if limitTracks > 0 {
		fmt.Fprintf(out, "## Top %d Tracks\n", limitTracks)
		for i, track := range analysis.TopTracks(events, limitTracks) {
			fmt.Fprintf(out, "%d. %s (%sh)\n", i+1, track.Key, formatHours(track.Hours))
		}
		fmt.Fprintln(out)
	}

	return nil
}

func artistTopTracks(events *history.Collection, artist string, limit int) string {
	if limit <= 0 {
		return ""
	}
	byArtist := events.Filter(func(e history.PlayEvent) bool {
		return e.ArtistName == artist
	})
	var names []string
	for _, track := range analysis.TopTracks(byArtist, limit) {
		names = append(names, track.Key)
	}
	return strings.Join(names, ", ")
}
