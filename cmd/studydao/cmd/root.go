package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arktech/studydao/config"
)

var (
	flagTimeout time.Duration
	log         zerolog.Logger
	v           = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "studydao",
	Short: "Verify StudyDAO study sessions through the KRNL kernel and interact with the DAO contract",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitializeFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 5*time.Minute,
		"overall timeout of a command, ignored by serve")

	log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		log.Fatal().Err(err).Msg("could not bind flags")
	}
}

// loadConfig loads the configuration and applies its log settings. It exits
// the process when the configuration is invalid.
func loadConfig() *config.Config {
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	if cfg.Log.JSON {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	log = log.Level(level)

	return cfg
}
