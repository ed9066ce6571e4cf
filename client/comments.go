package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jointwt/sonet/types"
)

// Comments returns one page of comments on a post
func (c *Client) Comments(ctx context.Context, postID int64, page, size int) (res types.Page[types.Comment], err error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), pageQuery(page, size), nil)
	if err != nil {
		return types.Page[types.Comment]{}, err
	}
	err = c.do(req, &res)
	return
}

// CreateComment ...
func (c *Client) CreateComment(ctx context.Context, postID int64, content string) (res types.Comment, err error) {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), nil, types.CommentRequest{Content: content})
	if err != nil {
		return types.Comment{}, err
	}
	err = c.do(req, &res)
	return
}

// UpdateComment ...
func (c *Client) UpdateComment(ctx context.Context, commentID int64, content string) (res types.Comment, err error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", commentID), nil, types.CommentRequest{Content: content})
	if err != nil {
		return types.Comment{}, err
	}
	err = c.do(req, &res)
	return
}

// DeleteComment ...
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", commentID), nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
