package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/models"
	"shopapi/internal/users"
)

type memUserRepo struct {
	byID map[uint]*models.User
}

func (m *memUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	return m.byID[id], nil
}
func (m *memUserRepo) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, nil
}
func (m *memUserRepo) FindByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (m *memUserRepo) FindByPhone(context.Context, string) (*models.User, error) { return nil, nil }
func (m *memUserRepo) Create(_ context.Context, u *models.User) error {
	u.ID = uint(len(m.byID) + 1)
	m.byID[u.ID] = u
	return nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	repo := &memUserRepo{byID: map[uint]*models.User{
		1: {Base: models.Base{ID: 1}, Username: "alice"},
	}}
	svc := users.NewService(repo, log)

	r := gin.New()
	r.Use(sessions.Sessions("shop_session", cookie.NewStore([]byte("test_secret"))))
	r.GET("/private", RequireAuth(svc, log), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": currentUser(c).Username})
	})
	r.POST("/fake-login", func(c *gin.Context) {
		sess := sessions.Default(c)
		sess.Set(sessionUserKey, uint(1))
		_ = sess.Save()
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthenticated.")
}

func TestRequireAuthResolvesSessionUser(t *testing.T) {
	r := newAuthRouter()

	login := httptest.NewRequest(http.MethodPost, "/fake-login", nil)
	lw := httptest.NewRecorder()
	r.ServeHTTP(lw, login)
	require.Equal(t, http.StatusOK, lw.Code)
	cookies := lw.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}
