package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nthudata.org/api/internal/appconf"
	"nthudata.org/api/internal/buses"
	"nthudata.org/api/internal/logging"
	"nthudata.org/api/internal/nthudata"
	"nthudata.org/api/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:          "busctl",
	Short:        "NTHU campus bus tool",
	Long:         "Fetches the campus bus timetable and prints schedules as JSON",
	SilenceUsage: true,
}

var (
	dataURL  string
	timeout  time.Duration
	verbose  bool
	nowFunc  = time.Now
	routeArg string
	dayArg   string
	dirArg   string
	afterArg string
)

func init() {
	defaults := appconf.Default()
	rootCmd.PersistentFlags().StringVarP(&dataURL, "data-url", "", defaults.DataBaseURL, "Base URL of the NTHU data repository (env NTHU_DATA_URL)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "", defaults.DataRequestTimeout, "Upstream request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
}

func main() {
	appconf.LoadDotEnv(".env", ".env.local")
	if v := os.Getenv("NTHU_DATA_URL"); v != "" {
		dataURL = v
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addQueryFlags registers the schedule filters on cmd.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&routeArg, "route-type", "r", string(buses.RouteTypeAll), "main, nanda or all")
	cmd.Flags().StringVarP(&dayArg, "day", "d", string(buses.DayCurrent), "weekday, weekend or current")
	cmd.Flags().StringVarP(&dirArg, "direction", "", string(buses.DirectionAll), "up, down or all")
	cmd.Flags().StringVarP(&afterArg, "after", "a", "", "Only buses at or after HH:MM, or now")
}

// parseQuery validates the filter flags the same way the HTTP API does.
func parseQuery(detailed bool) (utils.ScheduleQuery, error) {
	values := url.Values{
		"route_type": {routeArg},
		"day":        {dayArg},
		"direction":  {dirArg},
		"after":      {afterArg},
	}
	if detailed {
		values.Set("detailed", "true")
	}
	query, fieldErrors := utils.ParseScheduleQuery(values, nowFunc())
	for _, field := range slices.Sorted(maps.Keys(fieldErrors)) {
		return query, fmt.Errorf("invalid --%s: %s", strings.ReplaceAll(field, "_", "-"), fieldErrors[field][0])
	}
	return query, nil
}

// loadManager fetches the current timetable. A failed fetch is an error here,
// unlike in the server which keeps serving stale data.
func loadManager(ctx context.Context, stderr io.Writer) (*buses.Manager, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = logging.NewDevelopmentLogger(stderr, slog.LevelDebug)
	}

	config := nthudata.DefaultConfig()
	config.BaseURL = dataURL
	config.RequestTimeout = timeout
	config.DetailsTTL = 0

	manager := buses.NewManager(nthudata.NewClient(config, logger), logger)
	manager.UpdateData(ctx)
	if manager.LastCommitHash() == "" {
		return nil, fmt.Errorf("could not load %s from %s", buses.PayloadKey, dataURL)
	}
	return manager, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
