package main

import (
	"fmt"
	"net/http"
	"time"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running engine"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := getEnv("API_URL", defaultBaseURL)
	if len(args) > 0 {
		baseURL = args[0]
	}

	header(fmt.Sprintf("Health Check (%s)", baseURL))

	client := &http.Client{Timeout: 5 * time.Second}
	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		if err := checkEndpoint(client, baseURL+path); err != nil {
			status(statusError, "%s failed: %v", path, err)
			return err
		}

		if duration := time.Since(start); duration > healthSlowResponse {
			status(statusWarning, "%s slow response time (%v)", path, duration)
		} else {
			status(statusSuccess, "%s ok (%v)", path, duration)
		}
	}
	return nil
}

func checkEndpoint(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
