package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/auth"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
)

type stubUsers map[string]*models.User

func (s stubUsers) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, apperr.Unauthorized("user not found")
}

func setupAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := stubUsers{
		"cust":  {Base: models.Base{ID: "cust"}, Role: models.RoleCustomer},
		"admin": {Base: models.Base{ID: "admin"}, Role: models.RoleAdmin},
	}

	r := gin.New()
	r.Use(sessions.Sessions("gosess", cookie.NewStore([]byte("test-secret-key"))))

	r.GET("/login/:id", func(c *gin.Context) {
		require.NoError(t, auth.SignIn(c, c.Param("id")))
		c.Status(http.StatusNoContent)
	})
	r.GET("/logout", func(c *gin.Context) {
		require.NoError(t, auth.SignOut(c))
		c.Status(http.StatusNoContent)
	})

	private := r.Group("/private", auth.RequireAuth(users))
	private.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, auth.CurrentUser(c).ID)
	})
	private.GET("/admin", auth.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func login(t *testing.T, r *gin.Engine, id string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/"+id, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := setupAuthTestRouter(t)

	w := get(r, "/private/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/private/me", login(t, r, "cust"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cust", w.Body.String())

	w = get(r, "/private/me", login(t, r, "ghost"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := setupAuthTestRouter(t)

	assert.Equal(t, http.StatusForbidden, get(r, "/private/admin", login(t, r, "cust")).Code)
	assert.Equal(t, http.StatusOK, get(r, "/private/admin", login(t, r, "admin")).Code)
}

func TestSignOut(t *testing.T) {
	r := setupAuthTestRouter(t)
	cookies := login(t, r, "cust")

	w := get(r, "/logout", cookies)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private/me", w.Result().Cookies()).Code)
}
