package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-zfs/internal/config"
	"github.com/deploymenttheory/go-zfs/internal/device"
	"github.com/deploymenttheory/go-zfs/internal/logger"
	"github.com/deploymenttheory/go-zfs/internal/services"
	"github.com/deploymenttheory/go-zfs/internal/types"
)

var labelsCmd = &cobra.Command{
	Use:   "labels <device>",
	Short: "Show each vdev label's active uberblock and root block pointer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := device.Open(args[0])
		if err != nil {
			return err
		}
		defer dev.Close()

		service := services.NewPoolLabelService(config.Ashift(), logger.Logger)
		results := service.LoadLabels(dev)

		if config.Output() == "json" {
			return printLabelsJSON(results)
		}
		printLabelsTable(results)
		return nil
	},
}

func printLabelsTable(results []services.LabelResult) {
	for _, result := range results {
		fmt.Printf("Label %d\n", result.Index)
		if result.Err != nil {
			fmt.Printf("  error: %v\n", result.Err)
			continue
		}

		active := result.Label.ActiveUberblock()
		if active == nil {
			fmt.Println("  no active uberblock")
			continue
		}

		fmt.Printf("  txg:       %d\n", active.Txg)
		fmt.Printf("  version:   %d\n", active.Version)
		fmt.Printf("  guid_sum:  0x%016x\n", active.GuidSum)
		fmt.Printf("  timestamp: %s\n", time.Unix(int64(active.Timestamp), 0).UTC().Format(time.RFC3339))
		fmt.Printf("  slot:      %d\n", active.RingIndex)
		printBlockPointerTable(active.RootBlockPointer)
	}
}

func printBlockPointerTable(bp *types.BlockPointer) {
	fmt.Println("  root block pointer:")
	for i, dva := range bp.Dvas {
		fmt.Printf("    DVA[%d]=<%d:%x:%x>", i, dva.VdevIndex, dva.Offset, dva.AllocatedSize)
		if dva.IsGang {
			fmt.Print(" gang")
		}
		fmt.Println()
	}
	fmt.Printf("    %s %s %s size=%dL/%dP birth=%d fill=%d\n",
		bp.ObjectType, bp.Checksum, bp.Compression,
		bp.LogicalSize, bp.PhysicalSize, bp.BirthTxg, bp.FillCount)
	fmt.Printf("    cksum=%x:%x:%x:%x\n",
		bp.ChecksumWords[0], bp.ChecksumWords[1], bp.ChecksumWords[2], bp.ChecksumWords[3])
}

func printLabelsJSON(results []services.LabelResult) error {
	out := make([]map[string]interface{}, 0, len(results))
	for _, result := range results {
		entry := map[string]interface{}{"label": result.Index}
		if result.Err != nil {
			entry["error"] = result.Err.Error()
			out = append(out, entry)
			continue
		}
		if active := result.Label.ActiveUberblock(); active != nil {
			entry["uberblock"] = uberblockSummary(active)
		}
		out = append(out, entry)
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func uberblockSummary(ub *types.Uberblock) map[string]interface{} {
	return map[string]interface{}{
		"txg":        ub.Txg,
		"version":    ub.Version,
		"guid_sum":   ub.GuidSum,
		"timestamp":  ub.Timestamp,
		"ring_index": ub.RingIndex,
		"root_block_pointer": map[string]interface{}{
			"dvas":          ub.RootBlockPointer.Dvas,
			"object_type":   ub.RootBlockPointer.ObjectType,
			"checksum":      ub.RootBlockPointer.Checksum,
			"compression":   ub.RootBlockPointer.Compression,
			"level":         ub.RootBlockPointer.Level,
			"logical_size":  ub.RootBlockPointer.LogicalSize,
			"physical_size": ub.RootBlockPointer.PhysicalSize,
			"birth_txg":     ub.RootBlockPointer.BirthTxg,
			"fill_count":    ub.RootBlockPointer.FillCount,
		},
	}
}
