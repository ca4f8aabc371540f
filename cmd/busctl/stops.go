package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nthudata.org/api/internal/buses"
)

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "Lists every stop",
	Args:  cobra.NoArgs,
	RunE:  stops,
}

var stopCmd = &cobra.Command{
	Use:   "stop NAME",
	Short: "Prints the buses calling at a stop",
	Args:  cobra.ExactArgs(1),
	RunE:  stop,
}

func init() {
	addQueryFlags(stopCmd)
	rootCmd.AddCommand(stopsCmd)
	rootCmd.AddCommand(stopCmd)
}

func stops(cmd *cobra.Command, args []string) error {
	for _, s := range buses.Stops() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", s.ID, s.Name, s.NameEN)
	}
	return nil
}

func stop(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, ok := buses.StopByName(name); !ok {
		return fmt.Errorf("unknown stop %q", name)
	}

	query, err := parseQuery(false)
	if err != nil {
		return err
	}

	manager, err := loadManager(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	records := manager.StopSchedule(name, query.RouteType, query.Day, query.Direction)
	if query.After != "" {
		records = buses.AfterSpecificTime(records, query.After, func(r buses.StopScheduleRecord) (string, bool) {
			return r.ArriveTime, true
		})
	}
	return printJSON(cmd.OutOrStdout(), records)
}
