package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jointwt/sonet/types"
)

// Friends lists the viewer's friends
func (c *Client) Friends(ctx context.Context) (res []types.UserProfile, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/friends", nil, nil)
	if err != nil {
		return nil, err
	}
	err = c.do(req, &res)
	return
}

// PendingRequests lists friend requests awaiting the viewer's answer
func (c *Client) PendingRequests(ctx context.Context) (res []types.UserProfile, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/friends/requests/pending", nil, nil)
	if err != nil {
		return nil, err
	}
	err = c.do(req, &res)
	return
}

func (c *Client) friendAction(ctx context.Context, action string, userID int64) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/friends/%s/%d", action, userID), nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// SendRequest ...
func (c *Client) SendRequest(ctx context.Context, recipientID int64) error {
	return c.friendAction(ctx, "request", recipientID)
}

// AcceptRequest ...
func (c *Client) AcceptRequest(ctx context.Context, requesterID int64) error {
	return c.friendAction(ctx, "accept", requesterID)
}

// DeclineRequest ...
func (c *Client) DeclineRequest(ctx context.Context, requesterID int64) error {
	return c.friendAction(ctx, "decline", requesterID)
}

// CancelRequest ...
func (c *Client) CancelRequest(ctx context.Context, recipientID int64) error {
	return c.friendAction(ctx, "cancel", recipientID)
}

// Unfriend ...
func (c *Client) Unfriend(ctx context.Context, friendID int64) error {
	return c.friendAction(ctx, "unfriend", friendID)
}

// Block ...
func (c *Client) Block(ctx context.Context, userID int64) error {
	return c.friendAction(ctx, "block", userID)
}

// Unblock ...
func (c *Client) Unblock(ctx context.Context, userID int64) error {
	return c.friendAction(ctx, "unblock", userID)
}
