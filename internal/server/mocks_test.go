package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/session"
	"inkwell/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPostRepository is a mock implementation of repository.PostRepository
type MockPostRepository struct {
	mock.Mock
}

var _ repository.PostRepository = (*MockPostRepository)(nil)

func (m *MockPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BlogPost), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

// testServer wires a Server around mock repositories and a real renderer and
// session manager, then builds the full Fiber app so requests pass through
// the same middleware chain as production.
type testServer struct {
	srv      *Server
	app      *fiber.App
	users    *MockUserRepository
	posts    *MockPostRepository
	comments *MockCommentRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	renderer, err := view.NewTemplateRenderer()
	require.NoError(t, err)

	cfg := &config.Config{Port: "8000", SessionSecret: "test-secret"}
	users := new(MockUserRepository)
	posts := new(MockPostRepository)
	comments := new(MockCommentRepository)

	srv := &Server{
		config:      cfg,
		sessions:    session.NewManager(cfg.SessionSecret, nil),
		renderer:    renderer,
		userRepo:    users,
		postRepo:    posts,
		commentRepo: comments,
	}

	app := fiber.New(fiber.Config{ErrorHandler: srv.errorHandler})
	srv.app = app
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	return &testServer{srv: srv, app: app, users: users, posts: posts, comments: comments}
}

// sessionCookieFor issues a real session token for the user and arranges for
// the identity middleware to find the user row.
func (ts *testServer) sessionCookieFor(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, expires, err := ts.srv.sessions.Issue(user.ID)
	require.NoError(t, err)
	ts.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	return &http.Cookie{Name: session.CookieName, Value: token, Expires: expires}
}

func postFormRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func responseCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
