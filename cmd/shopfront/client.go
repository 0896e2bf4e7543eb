package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"syscall"
	"time"

	"shopfront/internal/api"
	"shopfront/internal/config"
)

const (
	pingTimeout    = 500 * time.Millisecond
	startupTimeout = 3 * time.Second
	startupPoll    = 100 * time.Millisecond
)

// withClient hands an API client to fn, starting a local server first if
// nothing is listening at the configured URL.
func withClient(cfg *config.Config, fn func(ctx context.Context, c *api.Client) error) error {
	client := api.NewClient(cfg.APIURL)
	ctx := context.Background()

	if err := ensureServer(ctx, cfg, client); err != nil {
		return err
	}
	return fn(ctx, client)
}

func ensureServer(ctx context.Context, cfg *config.Config, client *api.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := client.Ping(pingCtx)
	cancel()
	if err == nil {
		return nil
	}
	if !isConnRefused(err) {
		return fmt.Errorf("server at %s not reachable: %w", cfg.APIURL, err)
	}

	if err := startServerProcess(cfg); err != nil {
		return err
	}
	return waitForServer(ctx, client)
}

func startServerProcess(cfg *config.Config) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	cmd := exec.Command(exe, "srv")
	cmd.Env = append(os.Environ(),
		"SHOPFRONT_API_URL="+cfg.APIURL,
		"SHOPFRONT_DB="+cfg.DBPath,
		"SHOPFRONT_BLOB_ROOT="+cfg.BlobRoot,
	)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	// Detach; the server outlives this CLI invocation.
	return cmd.Process.Release()
}

func waitForServer(ctx context.Context, client *api.Client) error {
	deadline := time.Now().Add(startupTimeout)
	for time.Now().Before(deadline) {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := client.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		time.Sleep(startupPoll)
	}
	return fmt.Errorf("server did not come up within %s", startupTimeout)
}

func isConnRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
