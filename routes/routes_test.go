package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"webshop-backend/controllers"
	"webshop-backend/middleware"
	"webshop-backend/models"
	"webshop-backend/seed"
	"webshop-backend/store"
	"webshop-backend/utils"
)

type routerEnv struct {
	router   *mux.Router
	products *store.MemoryProductStore
	users    *store.MemoryUserStore
	sessions *store.MemorySessionStore
	codec    *utils.SessionCodec
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	products := store.NewMemoryProductStore()
	users := store.NewMemoryUserStore()
	sessions := store.NewMemorySessionStore()
	codec := utils.NewSessionCodec("test-secret")

	seedFile := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(seedFile, []byte(`[{"name":"Seeded Product","price":1}]`), 0o644))
	seeder := seed.NewSeeder(products, seedFile, logger)

	router := mux.NewRouter()
	RegisterRoutes(router,
		middleware.NewSession(sessions, users, codec, logger),
		controllers.NewAuthController(users, sessions, codec, time.Hour, logger),
		controllers.NewProductController(products, logger),
		controllers.NewCartController(products, users, logger),
		controllers.NewAdminController(seeder, logger))

	return &routerEnv{
		router:   router,
		products: products,
		users:    users,
		sessions: sessions,
		codec:    codec,
	}
}

// loginAs stores a user with the given role and returns a session cookie
// for it.
func (e *routerEnv) loginAs(t *testing.T, username, role string) *http.Cookie {
	t.Helper()
	user := &models.User{Username: username, Role: role}
	e.users.Put(user)

	session := &models.Session{ID: uuid.NewString(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, e.sessions.Create(context.Background(), session))
	token, err := e.codec.Sign(session.ID, session.ExpiresAt)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func (e *routerEnv) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func TestRoutesPublicCatalog(t *testing.T) {
	env := newRouterEnv(t)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/products", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/products/"+primitive.NewObjectID().Hex(), "", nil).Code)
}

func TestRoutesAddToCartRequiresSession(t *testing.T) {
	env := newRouterEnv(t)
	product := models.Product{ID: primitive.NewObjectID(), Name: "Mouse", Price: 10}
	require.NoError(t, env.products.InsertMany(context.Background(), []models.Product{product}))
	body := fmt.Sprintf(`{"productId":%q}`, product.ID.Hex())

	w := env.do(http.MethodPost, "/add-to-cart", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := env.loginAs(t, "alice", models.RoleUser)
	w = env.do(http.MethodPost, "/add-to-cart", body, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesSeedRequiresAdmin(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(http.MethodPost, "/admin/seed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/admin/seed", "", env.loginAs(t, "alice", models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/admin/seed", "", env.loginAs(t, "root", models.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)

	products, err := env.products.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Seeded Product", products[0].Name)
}

func TestRoutesLoginLogout(t *testing.T) {
	env := newRouterEnv(t)
	hash, err := utils.HashPassword("Abcdefg1")
	require.NoError(t, err)
	env.users.Put(&models.User{Username: "alice", Password: hash, Role: models.RoleUser})

	w := env.do(http.MethodPost, "/login", `{"username":"alice","password":"Abcdefg1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = env.do(http.MethodPost, "/logout", "", cookies[0])
	assert.Equal(t, http.StatusOK, w.Code)

	// The deleted session no longer authenticates anything.
	w = env.do(http.MethodPost, "/add-to-cart", `{"productId":"x"}`, cookies[0])
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
