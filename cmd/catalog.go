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
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zmb3/spotify/v2"

	"github.com/ademuri/spotify-history-tools/internal/catalog"
)

var catalogRange string
var catalogLimit int

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Reads top artists and playlists from the Spotify Web API",
	Long: `Queries the live Spotify Web API. Playlists work with --client_id and
--client_secret; your own top artists need a user access token in --token.`,
}

var catalogTopArtistsCmd = &cobra.Command{
	Use:   "top-artists",
	Short: "Lists your top artists for each time range",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runCatalog(cmd, func(ctx context.Context, client *catalog.Client) error {
			return printCatalogTopArtists(ctx, cmd.OutOrStdout(), client, catalogRange, catalogLimit)
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var catalogPlaylistsCmd = &cobra.Command{
	Use:   "playlists <user>",
	Short: "Lists a user's public playlists",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runCatalog(cmd, func(ctx context.Context, client *catalog.Client) error {
			return printCatalogPlaylists(ctx, cmd.OutOrStdout(), client, args[0])
		})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogTopArtistsCmd)
	catalogCmd.AddCommand(catalogPlaylistsCmd)

	catalogTopArtistsCmd.Flags().StringVar(&catalogRange, "range", "all", "time range: short, medium, long or all")
	catalogTopArtistsCmd.Flags().IntVarP(&catalogLimit, "number", "n", 50, "number of artists per range")
}

func runCatalog(cmd *cobra.Command, fn func(context.Context, *catalog.Client) error) error {
	ctx := cmd.Context()
	client, err := catalog.NewClient(ctx, catalog.Credentials{
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		AccessToken:  viper.GetString("token"),
	})
	if err != nil {
		return err
	}
	return fn(ctx, client)
}

// catalogRanges expands the --range flag.
func catalogRanges(s string) ([]spotify.Range, error) {
	if strings.EqualFold(s, "all") || s == "" {
		return catalog.TimeRanges, nil
	}
	r, err := catalog.ParseTimeRange(s)
	if err != nil {
		return nil, err
	}
	return []spotify.Range{r}, nil
}

func printCatalogTopArtists(ctx context.Context, out io.Writer, client *catalog.Client, rangeFlag string, limit int) error {
	ranges, err := catalogRanges(rangeFlag)
	if err != nil {
		return err
	}

	for _, r := range ranges {
		artists, err := client.TopArtists(ctx, r, limit)
		if err != nil {
			return err
		}

		result := Analysis{
			results: [][]string{{"Rank", "Artist", "Genres"}},
			summary: fmt.Sprintf("Range: %s, %d artists\n", r, len(artists)),
		}
		for _, a := range artists {
			result.results = append(result.results, []string{strconv.Itoa(a.Rank), a.Name, strings.Join(a.Genres, ", ")})
		}
		fmt.Fprintln(out, result)
	}
	return nil
}

func printCatalogPlaylists(ctx context.Context, out io.Writer, client *catalog.Client, user string) error {
	playlists, err := client.Playlists(ctx, user)
	if err != nil {
		return err
	}
	for _, p := range playlists {
		fmt.Fprintf(out, "%4d %s %s\n", p.Index, p.URI, p.Name)
	}
	return nil
}
