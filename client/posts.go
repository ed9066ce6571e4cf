package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jointwt/sonet/types"
)

// CreatePost publishes a new post. With an image the post is sent as
// multipart form data, otherwise as JSON.
func (c *Client) CreatePost(ctx context.Context, content string, image *Attachment) (res types.Post, err error) {
	var req *http.Request

	if image == nil {
		req, err = c.newRequest(ctx, http.MethodPost, "/posts", nil, types.PostRequest{Content: content})
	} else {
		form := newMultipartForm()
		if content != "" {
			if err := form.field("content", content); err != nil {
				return types.Post{}, err
			}
		}
		if err := form.file("image", image); err != nil {
			return types.Post{}, err
		}
		req, err = c.newMultipartRequest(ctx, http.MethodPost, "/posts", form)
	}
	if err != nil {
		return types.Post{}, err
	}

	err = c.do(req, &res)
	return
}

// GetPost ...
func (c *Client) GetPost(ctx context.Context, postID int64) (res types.Post, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil, nil)
	if err != nil {
		return types.Post{}, err
	}
	err = c.do(req, &res)
	return
}

// UpdatePost ...
func (c *Client) UpdatePost(ctx context.Context, postID int64, content string) (res types.Post, err error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", postID), nil, types.UpdatePostRequest{Content: content})
	if err != nil {
		return types.Post{}, err
	}
	err = c.do(req, &res)
	return
}

// DeletePost ...
func (c *Client) DeletePost(ctx context.Context, postID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ToggleLike likes or unlikes a post
func (c *Client) ToggleLike(ctx context.Context, postID int64) (res types.LikeResponse, err error) {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", postID), nil, nil)
	if err != nil {
		return types.LikeResponse{}, err
	}
	err = c.do(req, &res)
	return
}

// Timeline returns one page of the viewer's timeline
func (c *Client) Timeline(ctx context.Context, page, size int) (res types.Page[types.Post], err error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/timeline", pageQuery(page, size), nil)
	if err != nil {
		return types.Page[types.Post]{}, err
	}
	err = c.do(req, &res)
	return
}

func pageQuery(page, size int) url.Values {
	return url.Values{
		"page": []string{strconv.Itoa(page)},
		"size": []string{strconv.Itoa(size)},
	}
}
