package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Viper keys understood by the tool.
const (
	// KeyAshift is the top-level vdev allocation shift; it drives the
	// uberblock ring geometry (slot size 1 << max(ashift, 10)).
	KeyAshift = "ashift"

	// KeyOutput selects the CLI output format: table or json.
	KeyOutput = "output"

	// KeyVerbose enables debug logging.
	KeyVerbose = "verbose"
)

// Setup installs defaults and reads an optional zfs-config.yaml. A missing
// config file is fine; a malformed one is not.
func Setup() error {
	viper.SetConfigName("zfs-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.go-zfs")
	viper.AddConfigPath("/etc/go-zfs")

	viper.SetDefault(KeyAshift, 9)
	viper.SetDefault(KeyOutput, "table")
	viper.SetDefault(KeyVerbose, false)

	viper.SetEnvPrefix("GO_ZFS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Ashift returns the configured top-level vdev allocation shift.
func Ashift() uint {
	return viper.GetUint(KeyAshift)
}

// Output returns the configured CLI output format.
func Output() string {
	return viper.GetString(KeyOutput)
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return viper.GetBool(KeyVerbose)
}
