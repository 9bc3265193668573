package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-zfs/internal/config"
	"github.com/deploymenttheory/go-zfs/internal/device"
	"github.com/deploymenttheory/go-zfs/internal/logger"
	"github.com/deploymenttheory/go-zfs/internal/services"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <device>",
	Short: "Full per-device report including pool properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := device.Open(args[0])
		if err != nil {
			return err
		}
		defer dev.Close()

		service := services.NewPoolLabelService(config.Ashift(), logger.Logger)
		report := service.Inspect(dev)

		if config.Output() == "json" {
			return printReportJSON(report)
		}
		printReportTable(report)
		return nil
	},
}

func printReportTable(report *services.InspectionReport) {
	fmt.Printf("Inspection %s\n", report.ID)
	fmt.Printf("Device: %s\n\n", report.Device)

	for _, result := range report.Labels {
		fmt.Printf("Label %d\n", result.Index)
		if result.Err != nil {
			fmt.Printf("  error: %v\n", result.Err)
			continue
		}

		printProperties(result.Label.Properties())
		if active := result.Label.ActiveUberblock(); active != nil {
			fmt.Printf("  active uberblock: txg=%d slot=%d\n", active.Txg, active.RingIndex)
			printBlockPointerTable(active.RootBlockPointer)
		} else {
			fmt.Println("  no active uberblock")
		}
	}
}

func printProperties(props map[string]interface{}) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("  properties:")
	for _, name := range names {
		fmt.Printf("    %-20s %v\n", name, props[name])
	}
}

func printReportJSON(report *services.InspectionReport) error {
	labels := make([]map[string]interface{}, 0, len(report.Labels))
	for _, result := range report.Labels {
		entry := map[string]interface{}{"label": result.Index}
		if result.Err != nil {
			entry["error"] = result.Err.Error()
			labels = append(labels, entry)
			continue
		}
		entry["properties"] = result.Label.Properties()
		if active := result.Label.ActiveUberblock(); active != nil {
			entry["uberblock"] = uberblockSummary(active)
		}
		labels = append(labels, entry)
	}

	encoded, err := json.MarshalIndent(map[string]interface{}{
		"id":     report.ID,
		"device": report.Device,
		"labels": labels,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
