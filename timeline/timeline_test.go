package timeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jointwt/sonet/client"
	"github.com/jointwt/sonet/types"
)

var errBackend = errors.New("error: backend unavailable")

type fakeClient struct {
	mu sync.Mutex

	pages      [][]types.Post
	totalPages int
	requested  []int

	// when set, Timeline blocks until it is closed
	gate    chan struct{}
	started chan struct{}

	err     error
	likeErr error
	likes   int
	nextID  int64
}

func newFakeClient(totalPages, perPage int) *fakeClient {
	f := &fakeClient{totalPages: totalPages, nextID: 1000}
	id := int64(1)
	for p := 0; p < totalPages; p++ {
		var page []types.Post
		for i := 0; i < perPage; i++ {
			page = append(page, types.Post{ID: id, Content: fmt.Sprintf("post %d", id), LikeCount: 2, CommentCount: 1})
			id++
		}
		f.pages = append(f.pages, page)
	}
	return f
}

func (f *fakeClient) Timeline(ctx context.Context, page, size int) (types.Page[types.Post], error) {
	f.mu.Lock()
	f.requested = append(f.requested, page)
	gate, started, err := f.gate, f.started, f.err
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return types.Page[types.Post]{}, err
	}

	res := types.Page[types.Post]{TotalPages: f.totalPages, Number: page, Size: size}
	if page < len(f.pages) {
		res.Content = f.pages[page]
	}
	return res, nil
}

func (f *fakeClient) CreatePost(ctx context.Context, content string, image *client.Attachment) (types.Post, error) {
	if f.err != nil {
		return types.Post{}, f.err
	}
	f.nextID++
	return types.Post{ID: f.nextID, Content: content}, nil
}

func (f *fakeClient) UpdatePost(ctx context.Context, postID int64, content string) (types.Post, error) {
	if f.err != nil {
		return types.Post{}, f.err
	}
	return types.Post{ID: postID, Content: content, LikeCount: 9}, nil
}

func (f *fakeClient) DeletePost(ctx context.Context, postID int64) error {
	return f.err
}

func (f *fakeClient) ToggleLike(ctx context.Context, postID int64) (types.LikeResponse, error) {
	f.likes++
	return types.LikeResponse{}, f.likeErr
}

func (f *fakeClient) Comments(ctx context.Context, postID int64, page, size int) (types.Page[types.Comment], error) {
	return types.Page[types.Comment]{Content: []types.Comment{{ID: 1, Content: "hi"}}, TotalPages: 1, Size: size}, f.err
}

func (f *fakeClient) CreateComment(ctx context.Context, postID int64, content string) (types.Comment, error) {
	if f.err != nil {
		return types.Comment{}, f.err
	}
	return types.Comment{ID: 77, Content: content}, nil
}

func (f *fakeClient) DeleteComment(ctx context.Context, commentID int64) error {
	return f.err
}

func loaded(t *testing.T, cli *fakeClient) *Timeline {
	t.Helper()
	tl := New(cli)
	require.NoError(t, tl.FetchTimeline(context.Background()))
	return tl
}

func TestFetchTimeline(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cli := newFakeClient(3, 10)
	tl := New(cli)

	assert.Equal(0, tl.Page())
	assert.Equal(1, tl.TotalPages())
	assert.True(tl.HasMore())

	for i := 0; i < 5; i++ {
		require.NoError(t, tl.FetchTimeline(ctx))
		assert.LessOrEqual(len(tl.Posts()), 10*tl.Page())
	}

	assert.Equal([]int{0, 1, 2}, cli.requested)
	assert.Equal(3, tl.Page())
	assert.False(tl.HasMore())

	posts := tl.Posts()
	require.Len(t, posts, 30)
	for i, post := range posts {
		assert.Equal(int64(i+1), post.ID)
	}
}

func TestFetchTimelineGuard(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cli := newFakeClient(3, 2)
	tl := loaded(t, cli)
	assert.Equal(1, tl.Page())

	cli.mu.Lock()
	cli.gate = make(chan struct{})
	cli.started = make(chan struct{}, 1)
	cli.mu.Unlock()

	done := make(chan error)
	go func() { done <- tl.FetchTimeline(ctx) }()
	<-cli.started

	assert.True(tl.IsLoading())
	assert.NoError(tl.FetchTimeline(ctx))

	close(cli.gate)
	require.NoError(t, <-done)

	assert.Equal([]int{0, 1}, cli.requested)
	assert.Equal(2, tl.Page())
	assert.Len(tl.Posts(), 4)
	assert.False(tl.IsLoading())
}

func TestFetchTimelineError(t *testing.T) {
	assert := assert.New(t)

	cli := newFakeClient(2, 2)
	cli.err = errBackend
	tl := New(cli)

	assert.Equal(errBackend, tl.FetchTimeline(context.Background()))
	assert.Equal(0, tl.Page())
	assert.Empty(tl.Posts())
	assert.False(tl.IsLoading())

	cli.err = nil
	assert.NoError(tl.FetchTimeline(context.Background()))
	assert.Len(tl.Posts(), 2)
}

func TestFetchTimelineEmpty(t *testing.T) {
	cli := newFakeClient(0, 0)
	tl := New(cli)

	require.NoError(t, tl.FetchTimeline(context.Background()))
	require.NoError(t, tl.FetchTimeline(context.Background()))

	assert.Equal(t, []int{0}, cli.requested)
	assert.False(t, tl.HasMore())
}

func TestResetTimeline(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cli := newFakeClient(2, 2)
	tl := loaded(t, cli)
	require.NoError(t, tl.FetchTimeline(ctx))
	assert.False(tl.HasMore())

	tl.ResetTimeline()
	assert.Empty(tl.Posts())
	assert.Equal(0, tl.Page())
	assert.Equal(1, tl.TotalPages())

	require.NoError(t, tl.FetchTimeline(ctx))
	assert.Equal([]int{0, 1, 0}, cli.requested)
	assert.Len(tl.Posts(), 2)
}

func TestResetDuringFetch(t *testing.T) {
	cli := newFakeClient(2, 2)
	cli.gate = make(chan struct{})
	cli.started = make(chan struct{}, 1)
	tl := New(cli)

	done := make(chan error)
	go func() { done <- tl.FetchTimeline(context.Background()) }()
	<-cli.started

	tl.ResetTimeline()
	close(cli.gate)
	require.NoError(t, <-done)

	assert.Empty(t, tl.Posts())
	assert.Equal(t, 0, tl.Page())
	assert.False(t, tl.IsLoading())
}

func TestCreatePost(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cli := newFakeClient(1, 3)
	tl := loaded(t, cli)

	post, err := tl.CreatePost(ctx, "hello", nil)
	require.NoError(t, err)

	posts := tl.Posts()
	require.Len(t, posts, 4)
	assert.Equal("hello", posts[0].Content)
	assert.Equal(post.ID, posts[0].ID)
	assert.Equal(int64(1), posts[1].ID)

	cli.err = errBackend
	_, err = tl.CreatePost(ctx, "nope", nil)
	assert.Equal(errBackend, err)
	assert.Len(tl.Posts(), 4)
}

func TestToggleLike(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	t.Run("TwiceRestoresState", func(t *testing.T) {
		cli := newFakeClient(1, 1)
		tl := loaded(t, cli)

		require.NoError(t, tl.ToggleLike(ctx, 1))
		post, _ := tl.Post(1)
		assert.True(post.Liked())
		assert.Equal(int64(3), post.LikeCount)

		require.NoError(t, tl.ToggleLike(ctx, 1))
		post, _ = tl.Post(1)
		assert.False(post.Liked())
		assert.Equal(int64(2), post.LikeCount)
		assert.Equal(2, cli.likes)
	})

	t.Run("FailureRollsBack", func(t *testing.T) {
		var notices []string

		cli := newFakeClient(1, 1)
		cli.pages[0][0].IsLiked = types.Bool(true)
		tl := New(cli, WithNotifier(NotifierFunc(func(msg string) { notices = append(notices, msg) })))
		require.NoError(t, tl.FetchTimeline(ctx))

		before, _ := tl.Post(1)
		cli.likeErr = errBackend

		assert.Equal(errBackend, tl.ToggleLike(ctx, 1))

		after, _ := tl.Post(1)
		assert.Equal(before.IsLiked, after.IsLiked)
		assert.Equal(before.LikeCount, after.LikeCount)
		assert.Equal([]string{LikeFailedNotice}, notices)
	})

	t.Run("UnknownPost", func(t *testing.T) {
		cli := newFakeClient(1, 1)
		tl := loaded(t, cli)

		assert.NoError(tl.ToggleLike(ctx, 404))
		assert.Equal(0, cli.likes)
	})

	t.Run("NeverNegative", func(t *testing.T) {
		cli := newFakeClient(1, 1)
		cli.pages[0][0].IsLiked = types.Bool(true)
		cli.pages[0][0].LikeCount = 0
		tl := loaded(t, cli)

		require.NoError(t, tl.ToggleLike(ctx, 1))
		post, _ := tl.Post(1)
		assert.Equal(int64(0), post.LikeCount)
	})
}

func TestCreateComment(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cli := newFakeClient(1, 2)
	tl := loaded(t, cli)

	comment, err := tl.CreateComment(ctx, 2, "nice")
	require.NoError(t, err)
	assert.Equal("nice", comment.Content)

	post, _ := tl.Post(2)
	assert.Equal(int64(2), post.CommentCount)

	_, err = tl.CreateComment(ctx, 404, "elsewhere")
	assert.NoError(err)

	cli.err = errBackend
	_, err = tl.CreateComment(ctx, 2, "fail")
	assert.Equal(errBackend, err)
	post, _ = tl.Post(2)
	assert.Equal(int64(2), post.CommentCount)
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	cli := newFakeClient(1, 1)
	tl := loaded(t, cli)

	require.NoError(t, tl.DeleteComment(ctx, 1, 77))
	post, _ := tl.Post(1)
	assert.Equal(t, int64(0), post.CommentCount)

	page, err := tl.Comments(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
}

func TestUpdatePost(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cli := newFakeClient(1, 3)
	tl := loaded(t, cli)

	require.NoError(t, tl.UpdatePost(ctx, 2, "edited"))
	posts := tl.Posts()
	assert.Equal("edited", posts[1].Content)
	assert.Equal(int64(9), posts[1].LikeCount)
	assert.Equal(int64(2), posts[1].ID)

	cli.err = errBackend
	assert.Equal(errBackend, tl.UpdatePost(ctx, 2, "again"))
	post, _ := tl.Post(2)
	assert.Equal("edited", post.Content)
}

func TestDeletePost(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cli := newFakeClient(1, 3)
	tl := loaded(t, cli)

	snapshot := tl.Posts()

	require.NoError(t, tl.DeletePost(ctx, 2))
	posts := tl.Posts()
	require.Len(t, posts, 2)
	assert.Equal(int64(1), posts[0].ID)
	assert.Equal(int64(3), posts[1].ID)
	assert.Len(snapshot, 3)
	assert.Equal(int64(2), snapshot[1].ID)

	cli.err = errBackend
	assert.Equal(errBackend, tl.DeletePost(ctx, 1))
	assert.Len(tl.Posts(), 2)
}

func TestDecrementCommentCount(t *testing.T) {
	cli := newFakeClient(1, 1)
	tl := loaded(t, cli)

	for i := 0; i < 5; i++ {
		tl.DecrementCommentCount(1)
		post, _ := tl.Post(1)
		assert.GreaterOrEqual(t, post.CommentCount, int64(0))
	}

	post, _ := tl.Post(1)
	assert.Equal(t, int64(0), post.CommentCount)

	tl.DecrementCommentCount(404)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	cli := newFakeClient(1, 2)
	tl := loaded(t, cli)

	tl.Load(types.Post{ID: 2, Content: "refreshed", LikeCount: 5})
	posts := tl.Posts()
	require.Len(t, posts, 2)
	assert.Equal("refreshed", posts[1].Content)

	tl.Load(types.Post{ID: 50, Content: "single"})
	require.Len(t, tl.Posts(), 3)
	require.NoError(t, tl.ToggleLike(context.Background(), 50))
	post, ok := tl.Post(50)
	require.True(t, ok)
	assert.True(post.Liked())
	assert.Equal(int64(1), post.LikeCount)
}
