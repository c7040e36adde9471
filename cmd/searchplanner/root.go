package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/graphcatalog/searchplanner/pkg/logger"
)

var (
	cfgFile string
	log     *logger.Logger

	rootCmd = &cobra.Command{
		Use:   "searchplanner",
		Short: "Hybrid catalog search planner",
		Long: `searchplanner plans and prints the index query, graph query, and Gremlin
fragment a filter expression compiles to, against a schema and index
catalog fixture. It never executes the plan against a real database.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
			log = logger.NewDefaultLogger(logLevel())
		},
	}
)

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.searchplanner.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(planCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".searchplanner")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func logLevel() slog.Level {
	switch viper.GetString("log.level") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
