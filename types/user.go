package types

// UserProfile ...
type UserProfile struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Occupation  string `json:"occupation"`
	Address     string `json:"address"`
	AvatarURL   string `json:"avatarUrl"`
}

// DisplayName returns the full name, falling back to the email address
func (u UserProfile) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// IsZero ...
func (u UserProfile) IsZero() bool {
	return u.ID == 0 && u.Email == ""
}
