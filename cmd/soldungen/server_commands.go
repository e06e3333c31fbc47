package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
	"github.com/urfave/cli/v2"
)

// serverStats is what the health check reads back from a running server's
// /metrics endpoint.
type serverStats struct {
	ExplorerCalls  float64 `json:"explorer_calls"`
	ExplorerFailed float64 `json:"explorer_failed"`
	SectionErrors  float64 `json:"section_errors"`
	StaleResponses float64 `json:"stale_responses"`
	PageRequests   float64 `json:"page_requests"`
}

type healthReport struct {
	URL     string       `json:"url"`
	Status  int          `json:"status"`
	Healthy bool         `json:"healthy"`
	Metrics *serverStats `json:"metrics"`
}

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check server health and summarize its explorer traffic",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: 5 * time.Second,
			},
		},
		Action: func(c *cli.Context) error {
			serverURL := strings.TrimRight(c.String("server-url"), "/")
			if serverURL == "" {
				return fmt.Errorf("server-url is required (set SERVER_URL env var or use --server-url)")
			}

			client := &http.Client{
				Timeout: c.Duration("timeout"),
			}

			resp, err := client.Get(serverURL + "/health")
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 64))
			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned unhealthy status: %d", resp.StatusCode)
			}
			if strings.TrimSpace(string(body)) != "OK" {
				return fmt.Errorf("unexpected health response %q: not a soldungen server?", body)
			}

			report := healthReport{URL: serverURL, Status: resp.StatusCode, Healthy: true}
			stats, err := fetchServerStats(client, serverURL)
			if err != nil {
				fmt.Fprintf(c.App.ErrWriter, "warning: %v\n", err)
			}
			report.Metrics = stats

			return output(c, report, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Server is healthy (status: %d)\n", report.Status)
				fmt.Fprintf(w, "  URL: %s\n", report.URL)
				if stats == nil {
					fmt.Fprintln(w, "  Metrics: unavailable")
					return
				}
				fmt.Fprintf(w, "  Page requests:\t%.0f\n", stats.PageRequests)
				fmt.Fprintf(w, "  Explorer calls:\t%.0f (%.0f failed)\n", stats.ExplorerCalls, stats.ExplorerFailed)
				fmt.Fprintf(w, "  Section errors:\t%.0f\n", stats.SectionErrors)
				fmt.Fprintf(w, "  Stale responses:\t%.0f\n", stats.StaleResponses)
			})
		},
	}
}

// fetchServerStats scrapes /metrics. A server started without metrics
// yields nil stats and no error.
func fetchServerStats(client *http.Client, serverURL string) (*serverStats, error) {
	resp, err := client.Get(serverURL + "/metrics")
	if err != nil {
		return nil, fmt.Errorf("metrics scrape failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metrics endpoint returned status %d", resp.StatusCode)
	}

	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metrics: %w", err)
	}

	var stats serverStats
	stats.ExplorerCalls = sumCounter(families["explorer_api_calls_total"], nil)
	stats.ExplorerFailed = sumCounter(families["explorer_api_calls_total"], func(labels map[string]string) bool {
		return labels["status"] != "success"
	})
	stats.SectionErrors = sumCounter(families["section_loads_total"], func(labels map[string]string) bool {
		return labels["outcome"] == "error"
	})
	stats.StaleResponses = sumCounter(families["section_stale_responses_total"], nil)
	stats.PageRequests = sumCounter(families["http_requests_total"], nil)
	return &stats, nil
}

// sumCounter adds up the counter samples of mf that match keep.
func sumCounter(mf *dto.MetricFamily, keep func(map[string]string) bool) float64 {
	if mf == nil {
		return 0
	}
	var total float64
	for _, m := range mf.GetMetric() {
		if keep != nil {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if !keep(labels) {
				continue
			}
		}
		total += m.GetCounter().GetValue()
	}
	return total
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "soldungen CLI\n")
			fmt.Fprintf(c.App.Writer, "  Version: %s\n", version)
			fmt.Fprintf(c.App.Writer, "  Commit:  %s\n", commit)
			fmt.Fprintf(c.App.Writer, "  Built:   %s\n", date)
			return nil
		},
	}
}
