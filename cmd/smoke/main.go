package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// Smoke-checks a running instance: hits every GET route and reports
// per-route status. Exits non-zero if any route fails.

var routes = []string{
	"/api/v1/health",
	"/api/v1/stats",
	"/api/v1/projects",
	"/api/v1/projects/summary",
	"/api/v1/locations",
	"/api/v1/locations/stats",
	"/api/v1/device-types",
	"/api/v1/devices",
	"/api/v1/sensors",
	"/api/v1/sensors/analytics",
	"/api/v1/readings",
	"/api/v1/alerts",
	"/api/v1/alerts/detailed",
	"/api/v1/maintenance",
	"/api/v1/technicians/performance",
	"/api/v1/users",
	"/api/v1/firmware",
	"/api/v1/firmware/devices",
	"/api/v1/dashboard/metrics",
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "server base URL")
	token := flag.String("token", os.Getenv("API_TOKEN"), "bearer token")
	flag.Parse()

	client := resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	if *token != "" {
		client.SetAuthToken(*token)
	}

	failed := 0
	for _, route := range routes {
		resp, err := client.R().Get(route)
		switch {
		case err != nil:
			failed++
			fmt.Printf("FAIL %-35s %v\n", route, err)
		case resp.StatusCode() != 200:
			failed++
			fmt.Printf("FAIL %-35s HTTP %d: %s\n", route, resp.StatusCode(), resp.String())
		default:
			fmt.Printf("OK   %-35s %d bytes\n", route, len(resp.Body()))
		}
	}

	if failed > 0 {
		log.Fatalf("%d/%d routes failed", failed, len(routes))
	}
	fmt.Printf("All %d routes OK\n", len(routes))
}
