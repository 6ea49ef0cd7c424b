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
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-history",
	Short: "Performs analysis on Spotify streaming history exports",
	Long: `Reads the JSON files of a Spotify extended streaming history export and
reports where your listening hours went: top artists and tracks, monthly
totals, weekday and calendar heatmaps, and per-artist track breakdowns.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-history.yaml)")

	rootCmd.PersistentFlags().StringP("dir", "d", "./MyData", "Directory holding the streaming history export")
	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))

	rootCmd.PersistentFlags().String("ext", ".json", "File extension of the export files")
	viper.BindPFlag("ext", rootCmd.PersistentFlags().Lookup("ext"))

	rootCmd.PersistentFlags().String("timezone", "UTC", "Time zone used for hours, days and months, e.g. 'Europe/Berlin'")
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))

	rootCmd.PersistentFlags().String("week-start", "monday", "First day of the week in heatmaps")
	viper.BindPFlag("week-start", rootCmd.PersistentFlags().Lookup("week-start"))

	rootCmd.PersistentFlags().IntSlice("year", nil, "Only use plays from these years (repeatable)")
	viper.BindPFlag("year", rootCmd.PersistentFlags().Lookup("year"))

	rootCmd.PersistentFlags().Bool("strict", false, "Fail on the first malformed file or record instead of skipping it")
	viper.BindPFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))

	rootCmd.PersistentFlags().Bool("progress", false, "Show a progress bar while loading")
	viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))

	rootCmd.PersistentFlags().Int("workers", runtime.GOMAXPROCS(0), "Number of files parsed in parallel")
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))

	rootCmd.PersistentFlags().String("client_id", "", "Spotify client ID")
	viper.BindPFlag("client_id", rootCmd.PersistentFlags().Lookup("client_id"))
	viper.BindEnv("client_id", "SPOTIFY_ID", "SPOTIPY_CLIENT_ID")

	rootCmd.PersistentFlags().String("client_secret", "", "Spotify client secret")
	viper.BindPFlag("client_secret", rootCmd.PersistentFlags().Lookup("client_secret"))
	viper.BindEnv("client_secret", "SPOTIFY_SECRET", "SPOTIPY_CLIENT_SECRET")

	rootCmd.PersistentFlags().String("token", "", "Spotify user access token, needed for your own top artists")
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	viper.BindEnv("token", "SPOTIFY_TOKEN")
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// A missing .env is fine; credentials may come from the environment.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".spotify-history" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-history")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" && !f.Changed {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}
