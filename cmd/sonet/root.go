package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jointwt/sonet"
	"github.com/jointwt/sonet/client"
	"github.com/jointwt/sonet/profile"
	"github.com/jointwt/sonet/router"
	"github.com/jointwt/sonet/timeline"
)

var configFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "sonet",
	Version: sonet.FullVersion(),
	Short:   "Command-line client for the social network",
	Long: `sonet talks to the social network REST API: sign in with a
one-time passcode, read and write your timeline, manage your profile
and friends, and download activity reports.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// set logging level
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	},
}

// Execute adds all child commands to the root command
// and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Error("error executing command")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVarP(
		&configFile, "config", "c", "",
		"config file (default $HOME/.sonet.yaml)",
	)

	RootCmd.PersistentFlags().BoolP(
		"debug", "d", false,
		"Enable debug logging",
	)

	RootCmd.PersistentFlags().StringP(
		"uri", "u", client.DefaultURI,
		"API endpoint URI to connect to",
	)

	RootCmd.PersistentFlags().StringP(
		"store", "s", sonet.DefaultStore(),
		"token store (bitcask://<dir>, sqlite://<file> or memory://)",
	)

	RootCmd.PersistentFlags().IntP(
		"page-size", "p", timeline.DefaultPageSize,
		"number of posts loaded per timeline page",
	)

	RootCmd.PersistentFlags().Duration(
		"profile-cache-ttl", profile.DefaultCacheTTL,
		"how long other users' profiles are cached",
	)

	viper.BindPFlag("uri", RootCmd.PersistentFlags().Lookup("uri"))
	viper.SetDefault("uri", client.DefaultURI)

	viper.BindPFlag("store", RootCmd.PersistentFlags().Lookup("store"))
	viper.SetDefault("store", sonet.DefaultStore())

	viper.BindPFlag("page_size", RootCmd.PersistentFlags().Lookup("page-size"))
	viper.SetDefault("page_size", timeline.DefaultPageSize)

	viper.BindPFlag("profile_cache_ttl", RootCmd.PersistentFlags().Lookup("profile-cache-ttl"))
	viper.SetDefault("profile_cache_ttl", profile.DefaultCacheTTL)

	viper.BindPFlag("debug", RootCmd.PersistentFlags().Lookup("debug"))
	viper.SetDefault("debug", false)

	viper.SetDefault("refresh_interval", "@every 5m")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(configFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".sonet")
		viper.SetConfigType("yaml")
	}

	// from the environment
	viper.SetEnvPrefix("SONET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.WithError(err).Errorf("error loading config file")
		}
		return
	}
	log.Debugf("Using config file: %s", viper.ConfigFileUsed())
}

// configPath is where `sonet config --save` writes to
func configPath() string {
	if configFile != "" {
		return configFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	path, err := homedir.Expand("~/.sonet.yaml")
	if err != nil {
		log.WithError(err).Error("error finding home directory")
		os.Exit(1)
	}
	return path
}

// configOptions starts from the config file, when one was found, and
// layers flags and environment on top
func configOptions() []sonet.Option {
	var options []sonet.Option

	if path := viper.ConfigFileUsed(); path != "" {
		conf, err := sonet.Load(path)
		if err != nil {
			log.WithError(err).Warnf("error loading config %s, using defaults", path)
		} else {
			options = append(options, sonet.WithConfig(conf))
		}
	}

	return append(options,
		sonet.WithURI(viper.GetString("uri")),
		sonet.WithStore(viper.GetString("store")),
		sonet.WithPageSize(viper.GetInt("page_size")),
		sonet.WithProfileCacheTTL(viper.GetDuration("profile_cache_ttl")),
		sonet.WithRefreshInterval(viper.GetString("refresh_interval")),
	)
}

// newApp builds the application from the merged flags, environment and
// config file
func newApp() *sonet.App {
	options := append(configOptions(), sonet.WithNotifier(timeline.NotifierFunc(PrintNotice)))

	app, err := sonet.NewApp(options...)
	if err != nil {
		log.WithError(err).Error("error creating app")
		os.Exit(1)
	}

	return app
}

// requireAuth navigates to the timeline and exits when the guard sends
// the user to login instead
func requireAuth(app *sonet.App) {
	if err := app.Router.Navigate("/"); err != nil {
		log.WithError(err).Error("error navigating")
		exit(app)
	}

	if app.Router.Current().Name != router.Home {
		log.Error("not logged in, run `sonet login` first")
		exit(app)
	}
}

// commandContext is cancelled on SIGINT or SIGTERM
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
