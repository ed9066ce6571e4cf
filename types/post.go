package types

// Post ...
type Post struct {
	ID           int64       `json:"id"`
	Content      string      `json:"content"`
	ImageURL     string      `json:"imageUrl"`
	CreatedAt    Time        `json:"createdAt"`
	UpdatedAt    Time        `json:"updatedAt"`
	Author       UserProfile `json:"author"`
	LikeCount    int64       `json:"likeCount"`
	CommentCount int64       `json:"commentCount"`

	// nil until the viewer's like state is known
	IsLiked *bool `json:"isLiked,omitempty"`
}

// Liked reports whether the viewer is known to like the post
func (p Post) Liked() bool {
	return p.IsLiked != nil && *p.IsLiked
}

// Posts ...
type Posts []Post

// IndexOf returns the index of the post with the given id or -1
func (posts Posts) IndexOf(id int64) int {
	for i, post := range posts {
		if post.ID == id {
			return i
		}
	}
	return -1
}

// Comment ...
type Comment struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	CreatedAt Time        `json:"createdAt"`
	UpdatedAt Time        `json:"updatedAt"`
	Author    UserProfile `json:"author"`
}

// Bool returns a pointer to b
func Bool(b bool) *bool {
	return &b
}
