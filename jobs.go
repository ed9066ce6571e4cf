package sonet

import (
	"context"
	"time"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"github.com/jointwt/sonet/types"
)

// refreshTimeout bounds a single background refresh
const refreshTimeout = time.Minute

// RefreshTimelineJob reloads the first page of the timeline
type RefreshTimelineJob struct {
	app    *App
	notify func(types.Posts)
}

// NewRefreshTimelineJob ...
func NewRefreshTimelineJob(app *App, notify func(types.Posts)) cron.Job {
	return &RefreshTimelineJob{app: app, notify: notify}
}

// Run ...
func (job *RefreshTimelineJob) Run() {
	if !job.app.Session.IsAuthenticated() {
		log.Debug("not authenticated, skipping timeline refresh")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	job.app.Timeline.ResetTimeline()
	if err := job.app.Timeline.FetchTimeline(ctx); err != nil {
		log.WithError(err).Warn("error refreshing timeline")
		return
	}

	posts := job.app.Timeline.Posts()
	log.Debugf("refreshed timeline: %d posts", len(posts))

	if job.notify != nil {
		job.notify(posts)
	}
}

// StartJobs schedules the timeline refresh job at the configured interval.
// notify receives the posts after every successful refresh.
func (app *App) StartJobs(notify func(types.Posts)) error {
	app.Lock()
	defer app.Unlock()

	if app.cron != nil {
		return nil
	}

	c := cron.New()
	if err := c.AddJob(app.config.RefreshInterval, NewRefreshTimelineJob(app, notify)); err != nil {
		log.WithError(err).Errorf("invalid refresh interval %q", app.config.RefreshInterval)
		return err
	}
	c.Start()
	app.cron = c

	return nil
}

// StopJobs ...
func (app *App) StopJobs() {
	app.Lock()
	defer app.Unlock()

	if app.cron != nil {
		app.cron.Stop()
		app.cron = nil
	}
}
