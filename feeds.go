package sonet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/goware/urlx"
	log "github.com/sirupsen/logrus"

	"github.com/jointwt/sonet/types"
)

const feedTitleLength = 72

var (
	ErrInvalidFeedFormat = errors.New("error: invalid feed format")
)

// SiteURL derives the web root from the API base URI by dropping a
// trailing /api segment
func SiteURL(apiURI string) string {
	u, err := urlx.Parse(apiURI)
	if err != nil {
		log.WithError(err).Warnf("error parsing api uri %s", apiURI)
		return strings.TrimSuffix(strings.TrimSuffix(apiURI, "/"), "/api")
	}
	u.User = nil
	u.Path = strings.TrimSuffix(strings.TrimSuffix(u.Path, "/"), "/api")

	site, err := urlx.Normalize(u)
	if err != nil {
		log.WithError(err).Warnf("error normalizing api uri %s", apiURI)
		return ""
	}
	return strings.TrimSuffix(site, "/")
}

// NewTimelineFeed builds a syndication feed from timeline posts
func NewTimelineFeed(siteURL string, posts types.Posts) *feeds.Feed {
	now := time.Now()

	feed := &feeds.Feed{
		Title:       "Timeline",
		Link:        &feeds.Link{Href: siteURL},
		Description: fmt.Sprintf("Timeline from %s", siteURL),
		Created:     now,
	}

	var items []*feeds.Item

	for _, post := range posts {
		updated := post.UpdatedAt.Time
		if updated.IsZero() {
			updated = post.CreatedAt.Time
		}
		items = append(items, &feeds.Item{
			Id:          URLForPost(siteURL, post.ID),
			Title:       Excerpt(post.Content, feedTitleLength),
			Link:        &feeds.Link{Href: URLForPost(siteURL, post.ID)},
			Author:      &feeds.Author{Name: post.Author.DisplayName(), Email: post.Author.Email},
			Description: string(FormatPost(post.Content)),
			Created:     post.CreatedAt.Time,
			Updated:     updated,
		})
	}
	feed.Items = items

	return feed
}

// RenderFeed serializes a feed as "atom" or "rss"
func RenderFeed(feed *feeds.Feed, format string) (string, error) {
	switch strings.ToLower(format) {
	case "atom":
		return feed.ToAtom()
	case "rss":
		return feed.ToRss()
	default:
		return "", ErrInvalidFeedFormat
	}
}

// TimelineFeed renders the posts currently loaded in the timeline
func (app *App) TimelineFeed(format string) (string, error) {
	feed := NewTimelineFeed(SiteURL(app.config.URI), app.Timeline.Posts())
	return RenderFeed(feed, format)
}
