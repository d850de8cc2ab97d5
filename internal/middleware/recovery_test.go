package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recoveryRouter(handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/api/groups", handler)
	return router
}

func TestRecovery_PanicValues(t *testing.T) {
	for name, value := range map[string]any{
		"string": "catalog index out of range",
		"error":  errors.New("nil group"),
		"int":    42,
	} {
		t.Run(name, func(t *testing.T) {
			router := recoveryRouter(func(c *gin.Context) { panic(value) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/groups", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"internal_error"`)
			assert.Contains(t, w.Body.String(), w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRecovery_NoPanic(t *testing.T) {
	router := recoveryRouter(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"groups": 0})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/groups", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"groups":0}`, w.Body.String())
}

func TestRecovery_Portuguese(t *testing.T) {
	router := recoveryRouter(func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Ocorreu um erro inesperado")
}

func TestRecovery_AfterPartialWrite(t *testing.T) {
	router := recoveryRouter(func(c *gin.Context) {
		c.String(http.StatusAccepted, "partial")
		panic("late failure")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/groups", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	router := recoveryRouter(func(c *gin.Context) { panic(http.ErrAbortHandler) })

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/groups", nil))
	})
}

func TestRecovery_LogsComponent(t *testing.T) {
	buf := captureLogs(t, "error")
	router := recoveryRouter(func(c *gin.Context) { panic("nil group") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/groups", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), `"component":"recovery"`)
	assert.Contains(t, buf.String(), `"panic":"nil group"`)
	assert.Contains(t, buf.String(), "panic recovered")
}
