package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gatherly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCreds is an in-memory Credentials implementation for tests.
type memCreds struct {
	token  string
	userID string
}

func (m *memCreds) Token() (string, error)      { return m.token, nil }
func (m *memCreds) SetToken(token string) error { m.token = token; return nil }
func (m *memCreds) SetUserID(id string) error   { m.userID = id; return nil }
func (m *memCreds) Clear() error                { m.token, m.userID = "", ""; return nil }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *memCreds) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	creds := &memCreds{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(server.URL, creds, logger, server.Client()), creds
}

func TestClient_LoginPersistsSession(t *testing.T) {
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])

		json.NewEncoder(w).Encode(LoginResult{
			Token: "jwt-token",
			User:  User{ID: "user-1", Name: "Ana"},
		})
	}))

	result, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, "jwt-token", creds.token)
	assert.Equal(t, "user-1", creds.userID)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Post{})
	}))
	creds.token = "stored-token"

	_, err := client.Posts(context.Background(), PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer stored-token", gotAuth)
}

func TestClient_ServerErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))

	_, err := client.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_UnauthorizedMapsToAppError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Session expired"})
	}))

	_, err := client.Profile(context.Background(), "")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	assert.Equal(t, "Session expired", appErr.Message)

	// The wire-level error stays reachable underneath.
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_PostsFilterQuery(t *testing.T) {
	var got map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"lat":  q.Get("lat"),
			"lon":  q.Get("lon"),
			"name": q.Get("name"),
			"type": q.Get("type"),
		}
		json.NewEncoder(w).Encode([]Post{{ID: "p1"}})
	}))

	lat, lon := 48.85, 2.35
	posts, err := client.Posts(context.Background(), PostFilter{Lat: &lat, Lon: &lon, Name: "jazz", Type: "music"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "48.85", got["lat"])
	assert.Equal(t, "2.35", got["lon"])
	assert.Equal(t, "jazz", got["name"])
	assert.Equal(t, "music", got["type"])
}

func TestClient_CreatePostMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "Jazz Night", r.FormValue("title"))
		assert.Equal(t, "music", r.FormValue("category"))

		photos := r.MultipartForm.File["photos"]
		require.Len(t, photos, 2)
		f, err := photos[0].Open()
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-jpeg-1"), data)

		json.NewEncoder(w).Encode(Post{ID: "p9", Title: "Jazz Night"})
	}))

	post, err := client.CreatePost(context.Background(), CreatePostInput{
		Title:    "Jazz Night",
		Category: "music",
		Date:     time.Now(),
		Photos: []Photo{
			{Name: "one.jpg", Data: []byte("fake-jpeg-1")},
			{Name: "two.jpg", Data: []byte("fake-jpeg-2")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", post.ID)
}

func TestClient_LogoutClearsSessionEvenOnServerError(t *testing.T) {
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "session backend down"})
	}))
	creds.token = "stored-token"
	creds.userID = "user-1"

	err := client.Logout(context.Background())
	require.Error(t, err)
	assert.Empty(t, creds.token)
	assert.Empty(t, creds.userID)
}

func TestClient_ProfilePaths(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(User{ID: "user-1"})
	}))

	_, err := client.Profile(context.Background(), "")
	require.NoError(t, err)
	_, err = client.Profile(context.Background(), "user-7")
	require.NoError(t, err)

	assert.Equal(t, []string{"/profile", "/users/user-7"}, paths)
}
