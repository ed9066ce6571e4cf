package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jointwt/sonet"
	"github.com/jointwt/sonet/types"
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:     "timeline [flags]",
	Aliases: []string{"view", "show", "feed"},
	Short:   "Display your timeline",
	Long: `Display the posts of you and your friends, newest first. Use
--pages to load more than one page, --format to export the posts as an
Atom or RSS feed and --watch to keep refreshing.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pages, err := cmd.Flags().GetInt("pages")
		if err != nil {
			log.WithError(err).Error("error getting pages flag")
			os.Exit(1)
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			log.WithError(err).Error("error getting format flag")
			os.Exit(1)
		}
		watch, err := cmd.Flags().GetBool("watch")
		if err != nil {
			log.WithError(err).Error("error getting watch flag")
			os.Exit(1)
		}

		app := newApp()
		defer app.Close()

		requireAuth(app)
		showTimeline(app, pages, format, watch)
	},
}

func init() {
	timelineCmd.Flags().IntP("pages", "n", 1, "number of pages to load")
	timelineCmd.Flags().StringP("format", "f", "text", "output format (text, atom or rss)")
	timelineCmd.Flags().BoolP("watch", "w", false, "keep refreshing the timeline")

	RootCmd.AddCommand(timelineCmd)
}

func printTimeline(app *sonet.App, posts types.Posts, format string) {
	if format != "text" {
		out, err := app.TimelineFeed(format)
		if err != nil {
			log.WithError(err).Errorf("error rendering %s feed", format)
			exit(app)
		}
		fmt.Println(out)
		return
	}

	now := time.Now()
	for _, post := range posts {
		PrintPost(post, now)
		fmt.Println()
	}
}

func showTimeline(app *sonet.App, pages int, format string, watch bool) {
	ctx, cancel := commandContext()
	defer cancel()

	for i := 0; i < pages && app.Timeline.HasMore(); i++ {
		if err := app.Timeline.FetchTimeline(ctx); err != nil {
			log.WithError(err).Error("error retrieving timeline")
			exit(app)
		}
	}

	printTimeline(app, app.Timeline.Posts(), format)

	if !watch {
		if app.Timeline.HasMore() {
			log.Debugf("loaded %d of %d pages", app.Timeline.Page(), app.Timeline.TotalPages())
		}
		return
	}

	if err := app.StartJobs(func(posts types.Posts) {
		printTimeline(app, posts, format)
	}); err != nil {
		log.WithError(err).Error("error starting refresh job")
		exit(app)
	}
	defer app.StopJobs()

	log.Infof("watching timeline (%s), press Ctrl-C to stop", app.Config().RefreshInterval)
	<-ctx.Done()
}
