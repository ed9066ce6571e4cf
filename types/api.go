package types

// LoginRequest ...
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the one-time passcode issued for the second step
type LoginResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp"`
}

// VerifyOTPRequest ...
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// AuthResponse ...
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

// RegisterRequest ...
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest ...
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse ...
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

// ResetPasswordRequest ...
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest replaces every editable profile field. Empty fields
// are omitted and therefore cleared server side.
type UpdateProfileRequest struct {
	FullName    string `json:"fullName,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
	Address     string `json:"address,omitempty"`
}

// NewUpdateProfileRequest builds a full replacement request from a profile
func NewUpdateProfileRequest(profile UserProfile) UpdateProfileRequest {
	return UpdateProfileRequest{
		FullName:    profile.FullName,
		DateOfBirth: profile.DateOfBirth,
		Occupation:  profile.Occupation,
		Address:     profile.Address,
	}
}

// AvatarResponse ...
type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

// PostRequest is the JSON form of a new post without an attachment
type PostRequest struct {
	Content string `json:"content"`
}

// UpdatePostRequest ...
type UpdatePostRequest struct {
	Content string `json:"content"`
}

// LikeResponse ...
type LikeResponse struct {
	Message   string `json:"message"`
	IsLiked   bool   `json:"isLiked"`
	LikeCount int64  `json:"likeCount"`
}

// CommentRequest ...
type CommentRequest struct {
	Content string `json:"content"`
}

// ErrorResponse is the body the backend sends along with a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
