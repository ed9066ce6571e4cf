package client

import (
	"context"
	"net/http"

	"github.com/jointwt/sonet/types"
)

// Login exchanges credentials for a one-time passcode
func (c *Client) Login(ctx context.Context, email, password string) (res types.LoginResponse, err error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", nil, types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return types.LoginResponse{}, err
	}
	err = c.do(req, &res)
	return
}

// VerifyOTP exchanges a one-time passcode for an access token
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (res types.AuthResponse, err error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/verify-otp", nil, types.VerifyOTPRequest{Email: email, OTP: otp})
	if err != nil {
		return types.AuthResponse{}, err
	}
	err = c.do(req, &res)
	return
}

// Register creates a new account and returns the backend's message
func (c *Client) Register(ctx context.Context, email, password string) (msg string, err error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", nil, types.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	err = c.do(req, &msg)
	return
}

// ForgotPassword requests a password reset token
func (c *Client) ForgotPassword(ctx context.Context, email string) (res types.ForgotPasswordResponse, err error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/forgot-password", nil, types.ForgotPasswordRequest{Email: email})
	if err != nil {
		return types.ForgotPasswordResponse{}, err
	}
	err = c.do(req, &res)
	return
}

// ResetPassword sets a new password using a reset token
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (msg string, err error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/reset-password", nil, types.ResetPasswordRequest{Token: token, NewPassword: newPassword})
	if err != nil {
		return "", err
	}
	err = c.do(req, &msg)
	return
}
