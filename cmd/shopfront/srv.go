package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"shopfront/internal/blobstore"
	"shopfront/internal/config"
	"shopfront/internal/server"
	"shopfront/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the shopfront API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	addr, err := server.ListenAddr(cfg.APIURL)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	bucket, err := blobstore.NewLocalBucket(cfg.BlobRoot)
	if err != nil {
		return fmt.Errorf("open blob bucket: %w", err)
	}

	logger := slog.Default()
	images := server.NewImageService(bucket, cfg.PublicBaseURL, cfg.Uploads.MaxUploadBytes, cfg.Uploads.AllowedMediaPrefix, logger)

	server.Version = version
	srv := server.New(addr, st, images, logger)
	return srv.ListenAndServe()
}
