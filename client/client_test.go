package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jointwt/sonet/types"
)

// pngHeader is enough of a PNG for filetype to recognise it
var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52}

func newTestClient(t *testing.T, router *httprouter.Router, options ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	options = append([]Option{WithURI(server.URL + "/api")}, options...)
	cli, err := NewClient(options...)
	require.NoError(t, err)
	return cli
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readJSON decodes a request body the way the backend would
func readJSON(t *testing.T, r *http.Request, v interface{}) {
	t.Helper()

	body, err := ioutil.ReadAll(r.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v))
}

func TestParseBaseURI(t *testing.T) {
	u, err := ParseBaseURI("http://localhost:8080/api")
	require.NoError(t, err)
	assert.Equal(t, "/api/", u.Path)

	cli, err := NewClient(WithURI("http://localhost:8080/api"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/timeline", cli.endpoint("/timeline", nil))
}

func TestAuthorization(t *testing.T) {
	var got []string

	router := httprouter.New()
	router.GET("/api/users/me", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		got = append(got, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, types.UserProfile{ID: 1, Email: "a@x.com"})
	})

	token := ""
	cli := newTestClient(t, router, WithTokenSource(TokenSourceFunc(func() string { return token })))

	_, err := cli.CurrentUser(context.Background())
	require.NoError(t, err)

	token = "abc"
	me, err := cli.CurrentUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, got)
	assert.Equal(t, "a@x.com", me.Email)
}

func TestUnauthorized(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/friends", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusUnauthorized, types.ErrorResponse{Error: "token expired"})
	})
	router.POST("/api/posts/:id/like", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	var events []*APIError
	cli := newTestClient(t, router,
		WithToken("stale"),
		WithUnauthorizedHandler(func(err *APIError) { events = append(events, err) }),
	)

	_, err := cli.Friends(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "token expired", Message(err))

	_, err = cli.ToggleLike(context.Background(), 3)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	require.Len(t, events, 2)
	assert.Equal(t, http.StatusUnauthorized, events[1].StatusCode)
}

func TestAPIError(t *testing.T) {
	router := httprouter.New()
	router.PUT("/api/posts/:id", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "Post not found"})
	})
	router.DELETE("/api/posts/:id", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	called := false
	cli := newTestClient(t, router, WithUnauthorizedHandler(func(*APIError) { called = true }))

	_, err := cli.UpdatePost(context.Background(), 9, "edit")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Post not found", Message(err))
	assert.EqualError(t, err, "error: 400 Post not found")

	err = cli.DeletePost(context.Background(), 9)
	assert.True(t, errors.Is(err, ErrServerError))
	assert.Equal(t, "boom", Message(err))

	assert.False(t, called)
}

func TestTimeline(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/timeline", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		writeJSON(w, http.StatusOK, types.Page[types.Post]{
			Content:    []types.Post{{ID: 21}, {ID: 22}},
			TotalPages: 3,
			Number:     2,
			Size:       10,
			Last:       true,
		})
	})

	cli := newTestClient(t, router)
	page, err := cli.Timeline(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.Last)
}

func TestCreatePost(t *testing.T) {
	router := httprouter.New()
	router.POST("/api/posts", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		post := types.Post{ID: 1}

		if r.Header.Get("Content-Type") == "application/json" {
			var req types.PostRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			post.Content = req.Content
		} else {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			post.Content = r.FormValue("content")
			f, h, err := r.FormFile("image")
			require.NoError(t, err)
			defer f.Close()
			data, _ := ioutil.ReadAll(f)
			assert.Equal(t, pngHeader, data)
			assert.Equal(t, "image/png", h.Header.Get("Content-Type"))
			post.ImageURL = "/uploads/" + h.Filename
		}

		writeJSON(w, http.StatusCreated, post)
	})

	cli := newTestClient(t, router)

	t.Run("JSON", func(t *testing.T) {
		post, err := cli.CreatePost(context.Background(), "hello", nil)
		require.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
		assert.Empty(t, post.ImageURL)
	})

	t.Run("Multipart", func(t *testing.T) {
		image := &Attachment{Filename: "cat.png", Content: bytes.NewReader(pngHeader)}
		post, err := cli.CreatePost(context.Background(), "with image", image)
		require.NoError(t, err)
		assert.Equal(t, "with image", post.Content)
		assert.Equal(t, "/uploads/cat.png", post.ImageURL)
	})
}

func TestCreatePostMultipartOnly(t *testing.T) {
	router := httprouter.New()
	router.POST("/api/posts", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeJSON(w, http.StatusUnsupportedMediaType, types.ErrorResponse{Error: "Content type not supported"})
			return
		}
		writeJSON(w, http.StatusCreated, types.Post{ID: 2, Content: r.FormValue("content")})
	})

	cli := newTestClient(t, router)

	_, err := cli.CreatePost(context.Background(), "text only", nil)
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnsupportedMediaType, apiErr.StatusCode)
	assert.Equal(t, "Content type not supported", Message(err))

	image := &Attachment{Filename: "cat.png", Content: bytes.NewReader(pngHeader)}
	post, err := cli.CreatePost(context.Background(), "with image", image)
	require.NoError(t, err)
	assert.Equal(t, "with image", post.Content)
}

func TestUpdateAvatar(t *testing.T) {
	router := httprouter.New()
	router.POST("/api/users/me/avatar", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		_, h, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", h.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, types.AvatarResponse{AvatarURL: "/avatars/" + h.Filename})
	})

	cli := newTestClient(t, router)

	res, err := cli.UpdateAvatar(context.Background(), &Attachment{Filename: "me.bin", Content: bytes.NewReader([]byte("xx"))})
	require.NoError(t, err)
	assert.Equal(t, "/avatars/me.bin", res.AvatarURL)

	_, err = cli.UpdateAvatar(context.Background(), nil)
	assert.Equal(t, ErrNoAttachment, err)
}

func TestAuth(t *testing.T) {
	router := httprouter.New()
	router.POST("/api/auth/register", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req types.RegisterRequest
		readJSON(t, r, &req)
		assert.Equal(t, "a@x.com", req.Email)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("User registered successfully!"))
	})
	router.POST("/api/auth/login", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, types.LoginResponse{Message: "OTP sent", OTP: "123456"})
	})
	router.POST("/api/auth/verify-otp", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req types.VerifyOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "123456", req.OTP)
		writeJSON(w, http.StatusOK, types.AuthResponse{AccessToken: "jwt"})
	})

	cli := newTestClient(t, router)
	ctx := context.Background()

	msg, err := cli.Register(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully!", msg)

	login, err := cli.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "123456", login.OTP)

	auth, err := cli.VerifyOTP(ctx, "a@x.com", login.OTP)
	require.NoError(t, err)
	assert.Equal(t, "jwt", auth.AccessToken)
}

func TestComments(t *testing.T) {
	var calls []string

	router := httprouter.New()
	router.GET("/api/posts/:id/comments", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		calls = append(calls, "GET "+r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("size"))
		writeJSON(w, http.StatusOK, types.Page[types.Comment]{
			Content:    []types.Comment{{ID: 11, Content: "first"}},
			TotalPages: 3,
			Number:     2,
			Size:       5,
		})
	})
	router.POST("/api/posts/:id/comments", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		calls = append(calls, "POST "+r.URL.Path)
		var req types.CommentRequest
		readJSON(t, r, &req)
		assert.Equal(t, "nice", req.Content)
		writeJSON(w, http.StatusCreated, types.Comment{ID: 12, Content: req.Content})
	})
	router.PUT("/api/comments/:id", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		calls = append(calls, "PUT "+r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req types.CommentRequest
		readJSON(t, r, &req)
		assert.Equal(t, "nicer", req.Content)
		writeJSON(w, http.StatusOK, types.Comment{ID: 12, Content: req.Content})
	})
	router.DELETE("/api/comments/:id", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		calls = append(calls, "DELETE "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	cli := newTestClient(t, router)
	ctx := context.Background()

	page, err := cli.Comments(ctx, 7, 2, 5)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(11), page.Content[0].ID)
	assert.Equal(t, 3, page.TotalPages)

	created, err := cli.CreateComment(ctx, 7, "nice")
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)

	updated, err := cli.UpdateComment(ctx, 12, "nicer")
	require.NoError(t, err)
	assert.Equal(t, "nicer", updated.Content)

	require.NoError(t, cli.DeleteComment(ctx, 12))

	assert.Equal(t, []string{
		"GET /api/posts/7/comments",
		"POST /api/posts/7/comments",
		"PUT /api/comments/12",
		"DELETE /api/comments/12",
	}, calls)
}

func TestFriends(t *testing.T) {
	var actions []string

	router := httprouter.New()
	router.POST("/api/friends/:action/:id", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		actions = append(actions, p.ByName("action")+"/"+p.ByName("id"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.GET("/api/users/:id/friendship-status", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		writeJSON(w, http.StatusOK, types.FriendshipStatusResponse{Status: types.FriendshipFriends})
	})

	cli := newTestClient(t, router)
	ctx := context.Background()

	require.NoError(t, cli.SendRequest(ctx, 2))
	require.NoError(t, cli.AcceptRequest(ctx, 3))
	require.NoError(t, cli.Unfriend(ctx, 4))
	require.NoError(t, cli.Block(ctx, 5))
	assert.Equal(t, []string{"request/2", "accept/3", "unfriend/4", "block/5"}, actions)

	status, err := cli.FriendshipStatus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, types.FriendshipFriends, status.Status)
}

func TestWeeklySummary(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/reports/weekly-summary", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Disposition", "attachment; filename=weekly_report_2024-01-01_00-00-00.xlsx")
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write([]byte("PK\x03\x04"))
	})

	cli := newTestClient(t, router)
	report, err := cli.WeeklySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "weekly_report_2024-01-01_00-00-00.xlsx", report.Filename)
	assert.Equal(t, []byte("PK\x03\x04"), report.Data)

	assert.Contains(t, reportFilename(""), "weekly_report_")
}
