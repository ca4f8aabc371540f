package main

import (
	"github.com/spf13/cobra"

	"nthudata.org/api/internal/buses"
)

var detailedArg bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Prints departures for a route type, day and direction",
	Args:  cobra.NoArgs,
	RunE:  schedule,
}

func init() {
	addQueryFlags(scheduleCmd)
	scheduleCmd.Flags().BoolVarP(&detailedArg, "detailed", "", false, "Include projected arrival at every stop")
	rootCmd.AddCommand(scheduleCmd)
}

func schedule(cmd *cobra.Command, args []string) error {
	query, err := parseQuery(detailedArg)
	if err != nil {
		return err
	}

	manager, err := loadManager(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if query.Detailed {
		entries := manager.DetailedSchedule(query.RouteType, query.Day, query.Direction)
		if query.After != "" {
			entries = buses.AfterSpecificTime(entries, query.After, func(e buses.DetailedBusEntry) (string, bool) {
				return e.DepInfo.Time, true
			})
		}
		return printJSON(cmd.OutOrStdout(), entries)
	}

	entries := manager.Schedule(query.RouteType, query.Day, query.Direction)
	if query.After != "" {
		entries = buses.AfterSpecificTime(entries, query.After, func(e buses.BusEntry) (string, bool) {
			return e.Time, true
		})
	}
	return printJSON(cmd.OutOrStdout(), entries)
}
