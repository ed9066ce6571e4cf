package types

import (
	"encoding/json"
	"fmt"
)

// FriendshipStatus is the relationship between the viewer and another user
type FriendshipStatus string

const (
	FriendshipSelf            FriendshipStatus = "SELF"
	FriendshipNone            FriendshipStatus = "NONE"
	FriendshipFriends         FriendshipStatus = "FRIENDS"
	FriendshipPendingSent     FriendshipStatus = "PENDING_SENT"
	FriendshipPendingReceived FriendshipStatus = "PENDING_RECEIVED"
	FriendshipBlockedByMe     FriendshipStatus = "BLOCKED_BY_ME"
	FriendshipBlockedByOther  FriendshipStatus = "BLOCKED_BY_OTHER"
)

var friendshipStatuses = map[FriendshipStatus]string{
	FriendshipSelf:            "this is you",
	FriendshipNone:            "not connected",
	FriendshipFriends:         "friends",
	FriendshipPendingSent:     "friend request sent",
	FriendshipPendingReceived: "friend request received",
	FriendshipBlockedByMe:     "blocked by you",
	FriendshipBlockedByOther:  "has blocked you",
}

// ParseFriendshipStatus ...
func ParseFriendshipStatus(s string) (FriendshipStatus, error) {
	status := FriendshipStatus(s)
	if _, ok := friendshipStatuses[status]; !ok {
		return "", fmt.Errorf("error: unknown friendship status %q", s)
	}
	return status, nil
}

// Describe returns a short human readable description
func (s FriendshipStatus) Describe() string {
	return friendshipStatuses[s]
}

// UnmarshalJSON rejects statuses outside the known set
func (s *FriendshipStatus) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	status, err := ParseFriendshipStatus(v)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// FriendshipStatusResponse ...
type FriendshipStatusResponse struct {
	Status FriendshipStatus `json:"status"`
}
