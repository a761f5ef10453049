package util

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/lintang-b-s/Carbonetx/pkg"
	"github.com/spf13/viper"
)

func ReadConfig() error {
	setConfigDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults + env are enough to run
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func setConfigDefaults() {
	viper.SetDefault("CRF", pkg.DEFAULT_CRF)
	viper.SetDefault("PROJECT_LENGTH", pkg.DEFAULT_PROJECT_LENGTH)
	viper.SetDefault("TARGET_CAPTURE_AMOUNT", 0.0)
	viper.SetDefault("NUM_WORKERS", runtime.NumCPU())
	viper.SetDefault("SNAP_RADIUS_KM", pkg.DEFAULT_SNAP_RADIUS_KM)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
}
