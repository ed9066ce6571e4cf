package sonet

import (
	"fmt"
	"sync"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"github.com/jointwt/sonet/client"
	"github.com/jointwt/sonet/profile"
	"github.com/jointwt/sonet/router"
	"github.com/jointwt/sonet/session"
	"github.com/jointwt/sonet/storage"
	"github.com/jointwt/sonet/timeline"
)

// App wires the gateway, the state containers and the router together and
// reacts to the gateway's unauthorized events
type App struct {
	sync.Mutex

	config *Config

	Store    storage.Store
	Client   *client.Client
	Session  *session.Session
	Profile  *profile.Profile
	Timeline *timeline.Timeline
	Router   *router.Router

	cron *cron.Cron
}

// NewApp ...
func NewApp(options ...Option) (*App, error) {
	config := NewConfig()

	for _, opt := range options {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	store, err := storage.NewStore(config.Store)
	if err != nil {
		log.WithError(err).Errorf("error opening store %s", config.Store)
		return nil, err
	}

	app := &App{config: config, Store: store}

	clientOptions := []client.Option{
		client.WithURI(config.URI),
		client.WithUserAgent(fmt.Sprintf("sonet/%s", FullVersion())),
		client.WithTokenSource(client.TokenSourceFunc(func() string {
			return storage.Token(store)
		})),
		client.WithUnauthorizedHandler(app.unauthorized),
	}
	if config.HTTPClient != nil {
		clientOptions = append(clientOptions, client.WithHTTPClient(config.HTTPClient))
	}

	cli, err := client.NewClient(clientOptions...)
	if err != nil {
		store.Close()
		return nil, err
	}
	app.Client = cli

	app.Profile = profile.New(cli, config.ProfileCacheTTL)
	app.Session = session.New(cli, store, app.Profile, nil)
	app.Router = router.New(app.Session)
	app.Session.SetNavigator(app.Router)

	timelineOptions := []timeline.Option{timeline.WithPageSize(config.PageSize)}
	if config.Notifier != nil {
		timelineOptions = append(timelineOptions, timeline.WithNotifier(config.Notifier))
	}
	app.Timeline = timeline.New(cli, timelineOptions...)

	return app, nil
}

// Config returns the configuration the app was built with
func (app *App) Config() *Config {
	return app.config
}

// unauthorized is the top-level reaction to a 401 from any endpoint
func (app *App) unauthorized(err *client.APIError) {
	log.WithError(err).Debug("unauthorized response, ending session")
	app.Session.Expire()
}

// Close stops background jobs and closes the store
func (app *App) Close() error {
	app.StopJobs()
	return app.Store.Close()
}
