package api_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MrzAtn/recipe-app-api/internal/api"
	"github.com/MrzAtn/recipe-app-api/internal/auth"
	"github.com/MrzAtn/recipe-app-api/internal/recipes"
	"github.com/MrzAtn/recipe-app-api/internal/testutil"
	"github.com/MrzAtn/recipe-app-api/internal/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	router *gin.Engine
	db     *gorm.DB
	media  *recipes.MediaStore
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.NewDB(t)
	media := recipes.NewMediaStore(t.TempDir())
	return &server{router: api.NewRouter(db, media), db: db, media: media}
}

func (s *server) createUser(t *testing.T, email, password string) *users.User {
	t.Helper()
	u, err := users.NewRepository(s.db).Create(email, password, "")
	require.NoError(t, err)
	return u
}

func (s *server) tokenFor(t *testing.T, u *users.User) string {
	t.Helper()
	key, err := auth.IssueToken(s.db, u)
	require.NoError(t, err)
	return key
}

// doJSON performs a request against the router; token may be empty for
// public endpoints.
func (s *server) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// doUpload posts a multipart body with a single "image" file field.
func (s *server) doUpload(t *testing.T, path, token, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
