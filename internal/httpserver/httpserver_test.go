package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/almadepapel/storefront/internal/hash"
	"github.com/almadepapel/storefront/internal/httpserver"
	authmw "github.com/almadepapel/storefront/internal/middleware/auth"
	"github.com/almadepapel/storefront/internal/models"
	"github.com/almadepapel/storefront/internal/repo"
	"github.com/almadepapel/storefront/internal/service"
	"github.com/almadepapel/storefront/internal/tokens"
)

var testSecret = []byte("test-session-secret")

type fakeSender struct {
	err  error
	sent int
}

func (f *fakeSender) Send(from, replyTo, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	return nil
}

// fakePublisher records event types. A non-nil release channel blocks every
// PublishEvent until the channel is closed.
type fakePublisher struct {
	mu      sync.Mutex
	release chan struct{}
	events  []string
}

func (f *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event map[string]any) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, fmt.Sprint(event["type"]))
	return nil
}

func (f *fakePublisher) published(eventType string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, typ := range f.events {
		if typ == eventType {
			return true
		}
	}
	return false
}

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	Sender    *fakeSender
	Publisher *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Category{}))

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: gormRepo, Secret: testSecret}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	sender := &fakeSender{}
	publisher := &fakePublisher{}
	sessionMW := &authmw.Middleware{Auth: authSvc}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Session: sessionMW, Producer: publisher},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		AdminHandler:   &httpserver.AdminHTTP{Svc: catalogSvc, Producer: publisher},
		ContactHandler: &httpserver.ContactHTTP{Svc: &service.ContactService{Sender: sender}},
		Session:        sessionMW,
		StaticRoot:     "../../web",
	})

	return &testEnv{T: t, E: e, DB: db, Sender: sender, Publisher: publisher}
}

func (env *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) createUser(name, email, password, role string) *models.User {
	env.T.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)
	user := &models.User{Name: name, Email: email, PasswordHash: pwHash, Role: role}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) sessionCookie(user *models.User) *http.Cookie {
	env.T.Helper()

	exp := time.Now().Add(tokens.SessionTTL)
	token, err := tokens.SignSession(user.ID, user.Name, user.Email, user.Role, testSecret, exp)
	require.NoError(env.T, err)
	return &http.Cookie{Name: authmw.CookieName, Value: token}
}

func (env *testEnv) seedCategory(name, slug string) *models.Category {
	env.T.Helper()

	cat := &models.Category{Name: name, Slug: slug, Description: name}
	require.NoError(env.T, env.DB.Create(cat).Error)
	return cat
}

func (env *testEnv) seedProduct(name, author string, categoryID uint, price float64) *models.Product {
	env.T.Helper()

	prod := &models.Product{
		Name:       name,
		Author:     author,
		ImageURL:   "https://img.example/" + name + ".jpg",
		CategoryID: categoryID,
		Price:      price,
	}
	require.NoError(env.T, env.DB.Create(prod).Error)
	return prod
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}
