package controller_test

import (
	"bytes"
	"cafein/auth"
	"cafein/controller"
	"cafein/database"
	"cafein/form"
	"cafein/model"
	"cafein/route"
	"cafein/store"
	"cafein/utils"
	"cafein/view"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *utils.Tokens
	state  *store.AppState
	forms  *form.Registry
}

// setupTestDB opens a private in-memory sqlite database with the schema applied.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file::memory:", nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestApp(t *testing.T, submitter form.Submitter, reader controller.CafeReader) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		router: gin.New(),
		db:     setupTestDB(t),
		tokens: utils.NewTokens("test-secret"),
		state:  store.New(),
		forms:  form.NewRegistry(nil),
	}
	app.router.SetHTMLTemplate(view.Templates())

	ctl := route.Controllers{
		Form:   controller.NewFormController(app.forms, submitter),
		Browse: controller.NewBrowseController(reader, app.state),
		Cafe:   controller.NewCafeController(app.db),
		Auth:   auth.NewHandler(app.db, app.tokens),
		Tokens: app.tokens,
	}
	route.FormRoutes(app.router, ctl)
	route.CafeRoutes(app.router, ctl)
	return app
}

// createOwner stores an owner with the given password and returns its access token.
func (a *testApp) createOwner(t *testing.T, login, password string) (model.Owner, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	owner := model.Owner{Login: login, Password: string(hash), Role: model.RoleOwner}
	require.NoError(t, a.db.Create(&owner).Error)
	access, _, err := a.tokens.GenerateTokens(string(owner.Role), owner.ID)
	require.NoError(t, err)
	return owner, access
}

type request struct {
	method  string
	path    string
	body    any
	token   string
	cookies []*http.Cookie
	header  http.Header
	raw     io.Reader
}

func (a *testApp) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader = http.NoBody
	switch {
	case r.raw != nil:
		body = r.raw
	case r.body != nil:
		b, err := json.Marshal(r.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == controller.SessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", controller.SessionCookie)
	return nil
}
