package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/domain"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/service"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store/drivers/sqlite"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/httpx"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

type testEnv struct {
	server *httptest.Server
	store  store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec := tokenx.NewCodec([]byte("router-test-secret"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	uploads := t.TempDir()

	router := NewRouter(codec, "test", st, httpx.SessionWriter{}, time.Hour, logger)
	router.UploadsDir = uploads
	router.AuthService = &service.AuthService{Store: st, Codec: codec, TokenTTL: time.Hour}
	router.UserService = &service.UserService{Store: st}
	router.AvatarService = &service.AvatarService{Store: st, Root: uploads}
	router.PostService = &service.PostService{Store: st}
	router.TaxonomyService = &service.TaxonomyService{Store: st}
	router.CommentService = &service.CommentService{Store: st}
	router.LikeService = &service.LikeService{Store: st}
	router.PresenceService = &service.PresenceService{} // offline fallback
	require.NoError(t, router.ApplyRoutes())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	res, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func (e *testEnv) register(t *testing.T, name, email, password string) {
	t.Helper()
	res := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	res := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody[loginResponse](t, res)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (e *testEnv) promote(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()
	u, err := e.store.Users().GetUserByEmail(ctx, email)
	require.NoError(t, err)
	require.NoError(t, e.store.Users().UpdateRole(ctx, u.ID, domain.RoleAdmin))
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Alice", "alice@example.com", "password-123")

	t.Run("login sets session cookies", func(t *testing.T) {
		res := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "password-123",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)

		var session *http.Cookie
		for _, c := range res.Cookies() {
			if c.Name == httpx.SessionCookie {
				session = c
			}
		}
		require.NotNil(t, session)
		require.True(t, session.HttpOnly)
	})

	t.Run("bad password is 401 with fixed message", func(t *testing.T) {
		res := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, res.StatusCode)

		body := decodeBody[httpx.ErrorBody](t, res)
		require.Equal(t, "Invalid email or password", body.Error)
	})

	t.Run("blocked user is 403 before issuance", func(t *testing.T) {
		env.register(t, "Mallory", "mallory@example.com", "password-123")

		ctx := context.Background()
		u, err := env.store.Users().GetUserByEmail(ctx, "mallory@example.com")
		require.NoError(t, err)
		require.NoError(t, env.store.Users().UpdateStatus(ctx, u.ID, domain.StatusBlocked))

		res := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "mallory@example.com", "password": "password-123",
		})
		require.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("profile requires token", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/user", "", nil)
		require.Equal(t, http.StatusUnauthorized, res.StatusCode)

		token := env.login(t, "alice@example.com", "password-123")
		res = env.do(t, http.MethodGet, "/api/user", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody[map[string]userPayload](t, res)
		require.Equal(t, "alice@example.com", body["user"].Email)
	})
}

func TestPostFlow(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Author", "author@example.com", "password-123")
	token := env.login(t, "author@example.com", "password-123")

	res := env.do(t, http.MethodPost, "/api/user/posts", token, map[string]any{
		"title": "Hello World", "content": "My first post.", "published": true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decodeBody[postPayload](t, res)
	require.Equal(t, "hello-world", created.Slug)

	t.Run("public listing serves the post", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/posts", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody[struct {
			Posts      []postPayload     `json:"posts"`
			Pagination paginationPayload `json:"pagination"`
		}](t, res)
		require.Len(t, body.Posts, 1)
		require.Equal(t, 1, body.Pagination.Total)
		require.Equal(t, "Author", body.Posts[0].Author.Name)
	})

	t.Run("public slug fetch", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/posts/hello-world", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("drafts invisible publicly", func(t *testing.T) {
		res := env.do(t, http.MethodPost, "/api/user/posts", token, map[string]any{
			"title": "Draft Post", "content": "wip",
		})
		require.Equal(t, http.StatusCreated, res.StatusCode)

		res = env.do(t, http.MethodGet, "/api/posts/draft-post", "", nil)
		require.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("other users cannot edit", func(t *testing.T) {
		env.register(t, "Rival", "rival@example.com", "password-123")
		rival := env.login(t, "rival@example.com", "password-123")

		res := env.do(t, http.MethodPut, "/api/user/posts/"+created.ID, rival, map[string]any{
			"title": "Stolen", "content": "mine",
		})
		require.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("comment and like round trip", func(t *testing.T) {
		res := env.do(t, http.MethodPost, "/api/comments", token, map[string]string{
			"postId": created.ID, "content": "Nice!",
		})
		require.Equal(t, http.StatusCreated, res.StatusCode)

		res = env.do(t, http.MethodPost, "/api/likes", token, map[string]string{
			"postId": created.ID,
		})
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.True(t, decodeBody[map[string]bool](t, res)["liked"])

		res = env.do(t, http.MethodGet, "/api/comments?postId="+created.ID, token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		comments := decodeBody[[]commentPayload](t, res)
		require.Len(t, comments, 1)
		require.Equal(t, "Nice!", comments[0].Content)
	})
}

func TestAdminSurface(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Admin", "admin@example.com", "password-123")
	env.promote(t, "admin@example.com")
	admin := env.login(t, "admin@example.com", "password-123")

	env.register(t, "Pleb", "pleb@example.com", "password-123")
	pleb := env.login(t, "pleb@example.com", "password-123")

	t.Run("non-admin refused", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/admin/users", pleb, nil)
		require.Equal(t, http.StatusForbidden, res.StatusCode)

		body := decodeBody[httpx.ErrorBody](t, res)
		require.Equal(t, "Admin access required", body.Error)
	})

	t.Run("admin lists users with counts", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/admin/users", admin, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody[map[string][]adminUserPayload](t, res)
		require.Len(t, body["users"], 2)
	})

	t.Run("admin blocks a user, future logins fail", func(t *testing.T) {
		ctx := context.Background()
		u, err := env.store.Users().GetUserByEmail(ctx, "pleb@example.com")
		require.NoError(t, err)

		res := env.do(t, http.MethodPut, "/api/admin/users/"+u.ID, admin, map[string]string{
			"status": "BLOCKED",
		})
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "pleb@example.com", "password": "password-123",
		})
		require.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		ctx := context.Background()
		u, err := env.store.Users().GetUserByEmail(ctx, "pleb@example.com")
		require.NoError(t, err)

		res := env.do(t, http.MethodPut, "/api/admin/users/"+u.ID, admin, map[string]string{
			"role": "SUPERUSER",
		})
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("admin cannot delete self", func(t *testing.T) {
		ctx := context.Background()
		u, err := env.store.Users().GetUserByEmail(ctx, "admin@example.com")
		require.NoError(t, err)

		res := env.do(t, http.MethodDelete, "/api/admin/users/"+u.ID, admin, nil)
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("taxonomy management", func(t *testing.T) {
		res := env.do(t, http.MethodPost, "/api/admin/categories", admin, map[string]string{
			"name": "Engineering",
		})
		require.Equal(t, http.StatusCreated, res.StatusCode)

		res = env.do(t, http.MethodGet, "/api/categories", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		categories := decodeBody[[]domain.Category](t, res)
		require.Len(t, categories, 1)
		require.Equal(t, "engineering", categories[0].Slug)
	})

	t.Run("presence listing reads offline without redis", func(t *testing.T) {
		res := env.do(t, http.MethodPost, "/api/user/status", pleb, nil)
		// pleb was blocked above; a fresh login is refused but the old
		// token still authenticates until it expires.
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = env.do(t, http.MethodGet, "/api/admin/users/status", admin, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		listing := decodeBody[[]presencePayload](t, res)
		for _, entry := range listing {
			require.False(t, entry.IsOnline)
		}
	})
}

func (e *testEnv) doMultipart(t *testing.T, path, token, field, filename, contentType string, payload []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename)},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func TestAvatarUpload(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ava", "ava@example.com", "password-123")
	token := env.login(t, "ava@example.com", "password-123")

	payload := []byte("png-ish bytes")

	t.Run("upload updates the profile image", func(t *testing.T) {
		res := env.doMultipart(t, "/api/user/upload-image", token,
			"image", "me.png", "image/png", payload)
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := decodeBody[struct {
			Success  bool   `json:"success"`
			ImageURL string `json:"imageUrl"`
		}](t, res)
		require.True(t, body.Success)
		require.Contains(t, body.ImageURL, "/uploads/profile-images/")

		profile := env.do(t, http.MethodGet, "/api/user", token, nil)
		require.Equal(t, http.StatusOK, profile.StatusCode)
		user := decodeBody[map[string]userPayload](t, profile)
		require.Equal(t, body.ImageURL, user["user"].Image)

		// The stored file is public, no token needed.
		img := env.do(t, http.MethodGet, body.ImageURL, "", nil)
		require.Equal(t, http.StatusOK, img.StatusCode)
		data, err := io.ReadAll(img.Body)
		require.NoError(t, err)
		require.Equal(t, payload, data)
	})

	t.Run("wrong content type refused", func(t *testing.T) {
		res := env.doMultipart(t, "/api/user/upload-image", token,
			"image", "evil.svg", "image/svg+xml", payload)
		require.Equal(t, http.StatusBadRequest, res.StatusCode)

		body := decodeBody[httpx.ErrorBody](t, res)
		require.Equal(t, "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed", body.Error)
	})

	t.Run("field must be named image", func(t *testing.T) {
		res := env.doMultipart(t, "/api/user/upload-image", token,
			"file", "me.png", "image/png", payload)
		require.Equal(t, http.StatusBadRequest, res.StatusCode)

		body := decodeBody[httpx.ErrorBody](t, res)
		require.Equal(t, "No image provided", body.Error)
	})

	t.Run("anonymous upload refused", func(t *testing.T) {
		res := env.doMultipart(t, "/api/user/upload-image", "",
			"image", "me.png", "image/png", payload)
		require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestUIRedirects(t *testing.T) {
	env := newTestEnv(t)

	t.Run("dashboard redirects anonymous to login", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/dashboard", "", nil)
		require.Equal(t, http.StatusFound, res.StatusCode)
		require.Equal(t, "/login", res.Header.Get("Location"))
	})

	t.Run("admin page redirects non-admin home", func(t *testing.T) {
		env.register(t, "User", "user@example.com", "password-123")
		token := env.login(t, "user@example.com", "password-123")

		res := env.do(t, http.MethodGet, "/admin", token, nil)
		require.Equal(t, http.StatusFound, res.StatusCode)
		require.Equal(t, "/", res.Header.Get("Location"))
	})

	t.Run("public pages render", func(t *testing.T) {
		for _, path := range []string{"/", "/login", "/register", "/posts"} {
			res := env.do(t, http.MethodGet, path, "", nil)
			require.Equal(t, http.StatusOK, res.StatusCode, "path %s", path)
		}
	})

	t.Run("health endpoints", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = env.do(t, http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
	})
}
