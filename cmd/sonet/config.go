package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/jointwt/sonet"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [flags]",
	Short: "Show the effective configuration",
	Long: `Show the configuration merged from the config file, environment
and flags. --save writes it back to the config file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		save, err := cmd.Flags().GetBool("save")
		if err != nil {
			log.WithError(err).Error("error getting save flag")
			os.Exit(1)
		}

		showConfig(save)
	},
}

func init() {
	configCmd.Flags().Bool("save", false, "write the configuration to the config file")

	RootCmd.AddCommand(configCmd)
}

func showConfig(save bool) {
	conf := sonet.NewConfig()
	for _, opt := range configOptions() {
		if err := opt(conf); err != nil {
			log.WithError(err).Error("error applying configuration")
			os.Exit(1)
		}
	}

	data, err := yaml.Marshal(conf)
	if err != nil {
		log.WithError(err).Error("error encoding configuration")
		os.Exit(1)
	}
	fmt.Print(string(data))

	if !save {
		return
	}

	path := configPath()
	if err := conf.Save(path); err != nil {
		log.WithError(err).Errorf("error saving config to %s", path)
		os.Exit(1)
	}
	log.Infof("configuration saved to %s", path)
}
