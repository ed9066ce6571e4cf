package main

import (
	"io/ioutil"
	"os"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jointwt/sonet"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [flags]",
	Short: "Download your weekly activity summary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			log.WithError(err).Error("error getting output flag")
			os.Exit(1)
		}

		app := newApp()
		defer app.Close()

		requireAuth(app)
		report(app, output)
	},
}

func init() {
	reportCmd.Flags().StringP("output", "o", ".", "directory to save the report in")

	RootCmd.AddCommand(reportCmd)
}

func report(app *sonet.App, output string) {
	ctx, cancel := commandContext()
	defer cancel()

	res, err := app.Client.WeeklySummary(ctx)
	if err != nil {
		log.WithError(err).Error("error downloading weekly summary")
		exit(app)
	}

	if err := os.MkdirAll(output, 0755); err != nil {
		log.WithError(err).Errorf("error creating %s", output)
		exit(app)
	}

	// the filename comes from the server
	path, err := securejoin.SecureJoin(output, res.Filename)
	if err != nil {
		log.WithError(err).Errorf("error resolving report filename %q", res.Filename)
		exit(app)
	}

	if err := ioutil.WriteFile(path, res.Data, 0644); err != nil {
		log.WithError(err).Errorf("error writing %s", path)
		exit(app)
	}

	log.Infof("saved %s (%s, %s)", path, res.ContentType, humanize.Bytes(uint64(len(res.Data))))
}
