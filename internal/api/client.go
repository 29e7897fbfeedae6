// Package api implements the typed client for the Gatherly backend REST
// API. It owns bearer-token handling: login and registration persist the
// token, every subsequent call attaches it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gatherly/internal/models"
)

// Credentials is the slice of the session store the client needs.
type Credentials interface {
	Token() (string, error)
	SetToken(token string) error
	SetUserID(id string) error
	Clear() error
}

// Client issues requests against the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	log     *slog.Logger
}

// NewClient returns a Client for the API rooted at baseURL. A nil
// httpClient falls back to a client with a 30s timeout.
func NewClient(baseURL string, creds Credentials, log *slog.Logger, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		creds:   creds,
		log:     log,
	}
}

// errorBody is the server's failure payload shape.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends one JSON request and decodes the response into out (when out is
// non-nil). Non-2xx statuses become *Error carrying the server message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(req *http.Request, out any) error {
	if token, err := c.creds.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.asError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) asError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var body errorBody
	message := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			message = body.Message
		} else if body.Error != "" {
			message = body.Error
		}
	}
	c.log.Warn("api request failed",
		slog.String("url", resp.Request.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.String("message", message),
	)
	apiErr := &Error{Status: resp.StatusCode, Message: message}
	if resp.StatusCode == http.StatusUnauthorized {
		return models.NewUnauthorizedError(message, apiErr)
	}
	return apiErr
}

// Login authenticates with email/password and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	if err := c.storeSession(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and persists the returned session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/users", nil, in, &result); err != nil {
		return nil, err
	}
	if err := c.storeSession(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) storeSession(result *LoginResult) error {
	if err := c.creds.SetToken(result.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := c.creds.SetUserID(result.User.ID); err != nil {
		return fmt.Errorf("persist user id: %w", err)
	}
	return nil
}

// Logout ends the server session and clears the persisted one. The local
// session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
	if clearErr := c.creds.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// Profile fetches a user profile; an empty id means the logged-in user.
func (c *Client) Profile(ctx context.Context, id string) (*User, error) {
	path := "/profile"
	if id != "" {
		path = "/users/" + url.PathEscape(id)
	}
	var user User
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// States returns the states lookup.
func (c *Client) States(ctx context.Context) ([]State, error) {
	var states []State
	err := c.do(ctx, http.MethodGet, "/states", nil, nil, &states)
	return states, err
}

// Cities returns the cities lookup for a state.
func (c *Client) Cities(ctx context.Context, stateID string) ([]City, error) {
	var cities []City
	err := c.do(ctx, http.MethodGet, "/states/"+url.PathEscape(stateID)+"/cities", nil, nil, &cities)
	return cities, err
}

// PostTypes returns the post-type lookup.
func (c *Client) PostTypes(ctx context.Context) ([]PostType, error) {
	var types []PostType
	err := c.do(ctx, http.MethodGet, "/post-types", nil, nil, &types)
	return types, err
}

// Posts lists event posts, optionally filtered by proximity, name or type.
func (c *Client) Posts(ctx context.Context, filter PostFilter) ([]Post, error) {
	query := url.Values{}
	if filter.Lat != nil && filter.Lon != nil {
		query.Set("lat", strconv.FormatFloat(*filter.Lat, 'f', -1, 64))
		query.Set("lon", strconv.FormatFloat(*filter.Lon, 'f', -1, 64))
	}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	var posts []Post
	err := c.do(ctx, http.MethodGet, "/posts", query, nil, &posts)
	return posts, err
}

// Post fetches one post with its threaded comments.
func (c *Client) Post(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost uploads a new event post with its photos as multipart form data.
func (c *Client) CreatePost(ctx context.Context, in CreatePostInput) (*Post, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"type_id":     in.TypeID,
		"date":        in.Date.Format(time.RFC3339),
		"address":     in.Address,
		"latitude":    strconv.FormatFloat(in.Latitude, 'f', -1, 64),
		"longitude":   strconv.FormatFloat(in.Longitude, 'f', -1, 64),
		"category":    in.Category,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	for i, photo := range in.Photos {
		name := photo.Name
		if name == "" {
			name = fmt.Sprintf("photo-%d", i)
		}
		part, err := writer.CreateFormFile("photos", name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(photo.Data); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/posts", nil), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var post Post
	if err := c.send(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// LikePost likes a post.
func (c *Client) LikePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(id)+"/like", nil, nil, nil)
}

// UnlikePost removes a like from a post.
func (c *Client) UnlikePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id)+"/like", nil, nil, nil)
}

// Comment adds a comment to a post; a non-empty parentID makes it a reply.
func (c *Client) Comment(ctx context.Context, postID, text, parentID string) (*Comment, error) {
	body := map[string]string{"text": text}
	if parentID != "" {
		body["parent_id"] = parentID
	}
	var comment Comment
	err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comments", nil, body, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// LikeComment likes a comment.
func (c *Client) LikeComment(ctx context.Context, commentID string) error {
	return c.do(ctx, http.MethodPost, "/comments/"+url.PathEscape(commentID)+"/like", nil, nil, nil)
}

// UnlikeComment removes a like from a comment.
func (c *Client) UnlikeComment(ctx context.Context, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/comments/"+url.PathEscape(commentID)+"/like", nil, nil, nil)
}

// DeleteComment deletes the caller's comment.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/comments/"+url.PathEscape(commentID), nil, nil, nil)
}

// SearchUsers searches users by name.
func (c *Client) SearchUsers(ctx context.Context, q string) ([]User, error) {
	query := url.Values{}
	query.Set("q", q)
	var users []User
	err := c.do(ctx, http.MethodGet, "/users/search", query, nil, &users)
	return users, err
}

// Follow follows a user.
func (c *Client) Follow(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/follow", nil, nil, nil)
}
