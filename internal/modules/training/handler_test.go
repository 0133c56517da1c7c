package training

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// replaceRouter wires only the admin PUT endpoint, with no auth in front,
// so payload validation can be exercised without a database: every rejected
// payload is refused before the first query.
func replaceRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(nil, nil), zap.NewNop(), nil)
	router := gin.New()
	router.PUT("/admin/academy/trainings", handler.replaceTrainings)
	return router
}

func putJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/admin/academy/trainings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReplaceTrainingsRejectsInvalidJSON(t *testing.T) {
	w := putJSON(replaceRouter(), `{broken`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "JSON invalide.")
}

func TestReplaceTrainingsRejectsEmptyBatch(t *testing.T) {
	for _, body := range []string{`[]`, `{"trainings":[]}`} {
		w := putJSON(replaceRouter(), body)

		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %s", body)
		assert.Contains(t, w.Body.String(), "Aucune formation fournie.")
	}
}

func TestReplaceTrainingsRejectsMissingFields(t *testing.T) {
	w := putJSON(replaceRouter(), `[{"slug":"web","title":"Web"}]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Slug, titre et categorie requis")
}

func TestReplaceTrainingsRejectsWhitespaceOnlyFields(t *testing.T) {
	w := putJSON(replaceRouter(), `[{"slug":"  ","title":"Web","category":"Dev"}]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Slug, titre et categorie requis")
}
