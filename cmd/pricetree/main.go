package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type rootCmdConfig struct {
	verbose    bool
	debug      bool
	configFile string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "pricetree",
		Short: "pricetree is a tool to classify rental listings into price brackets",
		Long:  `A tool to grow decision trees from rental listings, evaluate them, and use them to predict the price bracket of new listings`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := config.Load(cmd, viper.New())
			if err != nil {
				return err
			}
			config.SetupLogging()
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress to STDERR")
	rootCmd.PersistentFlags().BoolVar(&(config.debug), "debug", false, "log debugging information to STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML file with values for any of the flags")
	rootCmd.AddCommand(versionCmd(), growCmd(config), predictCmd(config), setCmd(config), splitCmd(config))
	return rootCmd
}

/*
Load fills every flag of the command that was not given on the command line
with its value from the PRICETREE_* environment variables or the config
file, in that order of precedence.
*/
func (rcc *rootCmdConfig) Load(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix("PRICETREE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "binding flags")
	}
	configFile := rcc.configFile
	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", configFile)
		}
	}
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if serr := cmd.Flags().Set(f.Name, v.GetString(f.Name)); serr != nil {
			err = errors.Wrapf(serr, "setting %s from configuration", f.Name)
		}
	})
	return err
}

// SetupLogging sets the level and output of the logger.
func (rcc *rootCmdConfig) SetupLogging() {
	logrus.SetOutput(os.Stderr)
	switch {
	case rcc.debug:
		logrus.SetLevel(logrus.DebugLevel)
	case rcc.verbose:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}
