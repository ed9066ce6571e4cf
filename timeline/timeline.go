// Package timeline holds the paginated feed of posts and applies the
// viewer's edits, likes and comments to it.
package timeline

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/jointwt/sonet/client"
	"github.com/jointwt/sonet/internal/optimistic"
	"github.com/jointwt/sonet/types"
)

// LikeFailedNotice is shown when a like could not be saved
const LikeFailedNotice = "The action failed, please try again."

// Client is the subset of the gateway the timeline uses
type Client interface {
	Timeline(ctx context.Context, page, size int) (types.Page[types.Post], error)
	CreatePost(ctx context.Context, content string, image *client.Attachment) (types.Post, error)
	UpdatePost(ctx context.Context, postID int64, content string) (types.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	ToggleLike(ctx context.Context, postID int64) (types.LikeResponse, error)

	Comments(ctx context.Context, postID int64, page, size int) (types.Page[types.Comment], error)
	CreateComment(ctx context.Context, postID int64, content string) (types.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

// Timeline owns the loaded posts and the pagination cursor.
//
// page counts the pages loaded so far; totalPages starts at 1 meaning
// "unknown, assume more". FetchTimeline is a no-op while a fetch is in
// flight or once page has reached totalPages.
type Timeline struct {
	mu sync.Mutex

	cli      Client
	notifier Notifier
	pageSize int

	posts      types.Posts
	page       int
	totalPages int
	loading    bool

	// bumped by ResetTimeline so in-flight fetches can detect it
	generation int
}

// New ...
func New(cli Client, options ...Option) *Timeline {
	t := &Timeline{
		cli:        cli,
		pageSize:   DefaultPageSize,
		totalPages: 1,
		notifier: NotifierFunc(func(msg string) {
			log.Warn(msg)
		}),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Posts returns a copy of the loaded posts in display order
func (t *Timeline) Posts() types.Posts {
	t.mu.Lock()
	defer t.mu.Unlock()

	posts := make(types.Posts, len(t.posts))
	copy(posts, t.posts)
	return posts
}

// Post returns the loaded post with the given id
func (t *Timeline) Post(postID int64) (types.Post, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := t.posts.IndexOf(postID); i >= 0 {
		return t.posts[i], true
	}
	return types.Post{}, false
}

// Page is the number of pages loaded so far
func (t *Timeline) Page() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// TotalPages ...
func (t *Timeline) TotalPages() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalPages
}

// IsLoading ...
func (t *Timeline) IsLoading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// HasMore reports whether another FetchTimeline may load posts
func (t *Timeline) HasMore() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page < t.totalPages
}

// FetchTimeline loads the next page and appends it. Callers invoke it
// repeatedly, e.g. whenever the end of the list is reached.
func (t *Timeline) FetchTimeline(ctx context.Context) error {
	t.mu.Lock()
	if t.loading || t.page >= t.totalPages {
		t.mu.Unlock()
		return nil
	}
	t.loading = true
	page, generation := t.page, t.generation
	t.mu.Unlock()

	res, err := t.cli.Timeline(ctx, page, t.pageSize)

	t.mu.Lock()
	defer t.mu.Unlock()

	if generation != t.generation {
		log.Debugf("discarding timeline page %d fetched before reset", page)
		return nil
	}
	t.loading = false

	if err != nil {
		log.WithError(err).Error("error fetching timeline")
		return err
	}

	t.posts = append(t.posts, res.Content...)
	t.page++
	t.totalPages = res.TotalPages

	log.Debugf("loaded timeline page %d/%d (%d posts)", t.page, t.totalPages, len(t.posts))

	return nil
}

// ResetTimeline drops all loaded posts so the feed loads from scratch
func (t *Timeline) ResetTimeline() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.posts = nil
	t.page = 0
	t.totalPages = 1
	t.loading = false
	t.generation++
}

// CreatePost publishes a post and puts it at the front of the feed
func (t *Timeline) CreatePost(ctx context.Context, content string, image *client.Attachment) (types.Post, error) {
	post, err := t.cli.CreatePost(ctx, content, image)
	if err != nil {
		log.WithError(err).Error("error creating post")
		return types.Post{}, err
	}

	t.mu.Lock()
	t.posts = append(types.Posts{post}, t.posts...)
	t.mu.Unlock()

	return post, nil
}

// Load puts a single post fetched elsewhere into the feed, replacing any
// loaded copy in place
func (t *Timeline) Load(post types.Post) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := t.posts.IndexOf(post.ID); i >= 0 {
		t.posts[i] = post
		return
	}
	t.posts = append(t.posts, post)
}

// likeState is the part of a post a like toggle changes
type likeState struct {
	postID    int64
	isLiked   *bool
	likeCount int64
}

// ToggleLike flips the viewer's like immediately and reverts it, with a
// notice, if the backend rejects the change. Unknown posts are ignored.
func (t *Timeline) ToggleLike(ctx context.Context, postID int64) error {
	_, err := optimistic.Do(ctx, optimistic.Mutation[likeState]{
		Apply: func() (likeState, bool) {
			t.mu.Lock()
			defer t.mu.Unlock()

			i := t.posts.IndexOf(postID)
			if i < 0 {
				return likeState{}, false
			}

			post := &t.posts[i]
			before := likeState{postID: postID, isLiked: post.IsLiked, likeCount: post.LikeCount}

			if post.Liked() {
				post.IsLiked = types.Bool(false)
				if post.LikeCount > 0 {
					post.LikeCount--
				}
			} else {
				post.IsLiked = types.Bool(true)
				post.LikeCount++
			}

			return before, true
		},
		Commit: func(ctx context.Context) error {
			_, err := t.cli.ToggleLike(ctx, postID)
			return err
		},
		Rollback: func(before likeState) {
			t.mu.Lock()
			if i := t.posts.IndexOf(before.postID); i >= 0 {
				t.posts[i].IsLiked = before.isLiked
				t.posts[i].LikeCount = before.likeCount
			}
			t.mu.Unlock()
		},
	})
	if err != nil {
		log.WithError(err).WithField("post", postID).Error("error toggling like")
		t.notifier.Notify(LikeFailedNotice)
	}
	return err
}

// CreateComment adds a comment and bumps the post's comment count
func (t *Timeline) CreateComment(ctx context.Context, postID int64, content string) (types.Comment, error) {
	comment, err := t.cli.CreateComment(ctx, postID, content)
	if err != nil {
		log.WithError(err).Error("error creating comment")
		return types.Comment{}, err
	}

	t.mu.Lock()
	if i := t.posts.IndexOf(postID); i >= 0 {
		t.posts[i].CommentCount++
	}
	t.mu.Unlock()

	return comment, nil
}

// Comments returns one page of a post's comments
func (t *Timeline) Comments(ctx context.Context, postID int64, page int) (types.Page[types.Comment], error) {
	return t.cli.Comments(ctx, postID, page, t.pageSize)
}

// DeleteComment removes a comment and keeps the cached count in step
func (t *Timeline) DeleteComment(ctx context.Context, postID, commentID int64) error {
	if err := t.cli.DeleteComment(ctx, commentID); err != nil {
		log.WithError(err).Error("error deleting comment")
		return err
	}
	t.DecrementCommentCount(postID)
	return nil
}

// UpdatePost edits a post and replaces it with the server's version
func (t *Timeline) UpdatePost(ctx context.Context, postID int64, content string) error {
	post, err := t.cli.UpdatePost(ctx, postID, content)
	if err != nil {
		log.WithError(err).Error("error updating post")
		return err
	}

	t.mu.Lock()
	if i := t.posts.IndexOf(postID); i >= 0 {
		t.posts[i] = post
	}
	t.mu.Unlock()

	return nil
}

// DeletePost ...
func (t *Timeline) DeletePost(ctx context.Context, postID int64) error {
	if err := t.cli.DeletePost(ctx, postID); err != nil {
		log.WithError(err).Error("error deleting post")
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	posts := t.posts[:0]
	for _, post := range t.posts {
		if post.ID != postID {
			posts = append(posts, post)
		}
	}
	t.posts = posts

	return nil
}

// DecrementCommentCount lowers a post's cached comment count without
// calling the backend. The count never drops below zero.
func (t *Timeline) DecrementCommentCount(postID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i := t.posts.IndexOf(postID); i >= 0 && t.posts[i].CommentCount > 0 {
		t.posts[i].CommentCount--
	}
}
