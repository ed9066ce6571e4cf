package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jointwt/sonet/types"
)

// CurrentUser ...
func (c *Client) CurrentUser(ctx context.Context) (res types.UserProfile, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return types.UserProfile{}, err
	}
	err = c.do(req, &res)
	return
}

// UpdateProfile ...
func (c *Client) UpdateProfile(ctx context.Context, payload types.UpdateProfileRequest) (res types.UserProfile, err error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/users/me", nil, payload)
	if err != nil {
		return types.UserProfile{}, err
	}
	err = c.do(req, &res)
	return
}

// UpdateAvatar uploads a new avatar image
func (c *Client) UpdateAvatar(ctx context.Context, file *Attachment) (res types.AvatarResponse, err error) {
	if file == nil {
		return types.AvatarResponse{}, ErrNoAttachment
	}

	form := newMultipartForm()
	if err := form.file("file", file); err != nil {
		return types.AvatarResponse{}, err
	}

	req, err := c.newMultipartRequest(ctx, http.MethodPost, "/users/me/avatar", form)
	if err != nil {
		return types.AvatarResponse{}, err
	}
	err = c.do(req, &res)
	return
}

// GetUser ...
func (c *Client) GetUser(ctx context.Context, userID int64) (res types.UserProfile, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, nil)
	if err != nil {
		return types.UserProfile{}, err
	}
	err = c.do(req, &res)
	return
}

// FriendshipStatus ...
func (c *Client) FriendshipStatus(ctx context.Context, userID int64) (res types.FriendshipStatusResponse, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/users/%d/friendship-status", userID), nil, nil)
	if err != nil {
		return types.FriendshipStatusResponse{}, err
	}
	err = c.do(req, &res)
	return
}
