// Command advise resolves a single advisory and prints its message. It takes
// no flags: the location comes from ADVISE_LOCATION or the configured
// default, and ADVISE_SENSITIVE=true requests the sensitive group message.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
	"github.com/dharshaa/air-advisor/internal/infra/aq/csvfile"
	"github.com/dharshaa/air-advisor/internal/infra/aq/openaq"
	"github.com/dharshaa/air-advisor/internal/infra/config"
	"github.com/dharshaa/air-advisor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "advise: %v\n", err)
		os.Exit(1)
	}
	log := logger.New()

	live := openaq.NewClient(openaq.Config{
		BaseURL:            cfg.Live.BaseURL,
		Timeout:            cfg.Live.Timeout,
		BreakerMaxFailures: cfg.Live.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.Live.BreakerOpenTimeout,
	})
	csvSource := csvfile.New(cfg.CSV.Path)
	resolver := airquality.NewResolver(live, csvSource, cfg.Live.Timeout, log)

	// One-shot runs read their trend baseline straight from the CSV tail.
	svc := airquality.NewService(airquality.Config{
		Thresholds: airquality.Thresholds{
			Moderate:  cfg.Advisor.ModerateThreshold,
			Unhealthy: cfg.Advisor.UnhealthyThreshold,
			Hazardous: cfg.Advisor.HazardousThreshold,
		},
		AnomalyRatio:  cfg.Advisor.AnomalyRatio,
		HistoryWindow: cfg.Advisor.HistoryWindow,
	}, resolver, csvSource, nil, log)

	location := strings.TrimSpace(os.Getenv("ADVISE_LOCATION"))
	if location == "" {
		location = cfg.Advisor.DefaultLocation
	}
	sensitive := os.Getenv("ADVISE_SENSITIVE") == "1" || strings.EqualFold(os.Getenv("ADVISE_SENSITIVE"), "true")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	advisory, err := svc.Advise(ctx, airquality.Request{Location: location, SensitiveGroup: sensitive})
	if err != nil {
		fmt.Fprintf(os.Stderr, "advise: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(advisory.Message)
}
