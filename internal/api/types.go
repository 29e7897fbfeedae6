package api

import (
	"fmt"
	"time"
)

// Error is a failed API call: the HTTP status and the server-supplied
// message string. The backend sends no structured error codes.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// User is a user as the backend represents it.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccountType string `json:"account_type"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
	Category    string `json:"category"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// LoginResult is the payload of a successful login or registration.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterInput is the account-creation request body.
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
	Category    string `json:"category,omitempty"`
	StateID     string `json:"state_id,omitempty"`
	CityID      string `json:"city_id,omitempty"`
}

// State is an entry of the states lookup.
type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City is an entry of the cities lookup for a state.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PostType is an entry of the post-type lookup.
type PostType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Media is one media item on a post.
type Media struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Post is an event post as the backend represents it.
type Post struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	BusinessID     string    `json:"business_id"`
	BusinessName   string    `json:"business_name"`
	BusinessAvatar string    `json:"business_avatar"`
	Media          []Media   `json:"media"`
	Date           time.Time `json:"date"`
	Address        string    `json:"address"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Category       string    `json:"category"`
	LikesCount     int       `json:"likes_count"`
	Liked          bool      `json:"liked"`
	Comments       []Comment `json:"comments,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Comment is a post comment; unlike the local cache, the remote model is
// threaded via ParentID and carries its own like state.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	ParentID   string    `json:"parent_id,omitempty"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Text       string    `json:"text"`
	LikesCount int       `json:"likes_count"`
	Liked      bool      `json:"liked"`
	Replies    []Comment `json:"replies,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostFilter narrows the post listing. Nil coordinates mean no proximity
// filter; empty strings mean no name/type filter.
type PostFilter struct {
	Lat  *float64
	Lon  *float64
	Name string
	Type string
}

// Photo is one file part of a multipart post-creation request.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// CreatePostInput is the multipart post-creation request.
type CreatePostInput struct {
	Title       string
	Description string
	TypeID      string
	Date        time.Time
	Address     string
	Latitude    float64
	Longitude   float64
	Category    string
	Photos      []Photo
}
