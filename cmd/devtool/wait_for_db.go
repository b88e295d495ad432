package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/database"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	header("Waiting for database...")

	url := databaseURL()
	for i := 0; i < waitMaxAttempts; i++ {
		err := pingDatabase(url)
		if err == nil {
			status(statusSuccess, "Database is ready")
			return nil
		}

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, waitMaxAttempts, err)
		time.Sleep(waitRetryInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts", waitMaxAttempts)
}

func pingDatabase(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), waitRetryInterval)
	defer cancel()

	pool, err := database.NewPool(ctx, url, 1, 0, 0)
	if err != nil {
		return err
	}
	defer pool.Close()
	return pool.Ping(ctx)
}
