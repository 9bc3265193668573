package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-zfs/internal/config"
	"github.com/deploymenttheory/go-zfs/internal/logger"
)

var (
	// Global output flags only
	verbose      bool
	outputFormat string
	ashift       uint
)

var rootCmd = &cobra.Command{
	Use:   "go-zfs",
	Short: "Read-only ZFS pool metadata inspector",
	Long: `go-zfs is a read-only command-line tool for inspecting ZFS storage pool
on-disk metadata directly from raw disks, partitions, or image files,
without importing the pool or relying on kernel ZFS.

It decodes the four vdev label copies, the pool property nvlist, and the
uberblock ring, and surfaces the active transaction checkpoint and its
root block pointer. Ideal for forensics, data recovery triage, and
verifying what txg a device last committed.

Commands:
  labels      Show each label's active uberblock and root block pointer
  inspect     Full per-device report including pool properties`,
	Version: "0.1.0-dev",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Setup(); err != nil {
			return err
		}
		return logger.Init(logger.Config{Debug: config.Verbose(), Format: "human"})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json)")
	rootCmd.PersistentFlags().UintVar(&ashift, "ashift", 9, "top-level vdev allocation shift (sets uberblock slot size)")

	_ = viper.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag(config.KeyOutput, rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag(config.KeyAshift, rootCmd.PersistentFlags().Lookup("ashift"))

	rootCmd.AddCommand(
		labelsCmd,
		inspectCmd,
	)
}
