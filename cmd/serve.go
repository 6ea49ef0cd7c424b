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
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the listening aggregates as a JSON API",
	Long: `Loads the export directory and answers queries over HTTP. POST /api/reload
re-reads the directory without restarting.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := runServe(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	serveCmd.Flags().String("export_dir", ".", "directory search exports are written to")
	viper.BindPFlag("export_dir", serveCmd.Flags().Lookup("export_dir"))

	serveCmd.Flags().StringSlice("allow_origin", nil, "origins allowed by CORS (default all)")
	viper.BindPFlag("allow_origin", serveCmd.Flags().Lookup("allow_origin"))
}

func runServe(cmd *cobra.Command) error {
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))

	opts, err := loadOptions(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	opts.Logger = logger
	start, err := weekStart()
	if err != nil {
		return err
	}

	dir := viper.GetString("dir")
	load := func(ctx context.Context) (*history.Result, error) {
		return history.Load(ctx, dir, opts)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(load, server.Config{
		ExportDir:    viper.GetString("export_dir"),
		WeekStart:    start,
		AllowOrigins: viper.GetStringSlice("allow_origin"),
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, fmt.Sprintf(":%d", viper.GetInt("port")))
}
