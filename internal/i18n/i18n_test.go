//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalogs[DefaultLocale] {
		assert.Contains(t, catalogs["pt"], key)
	}
	assert.Len(t, catalogs["pt"], len(catalogs[DefaultLocale]))
}

func TestTranslator_Translate(t *testing.T) {
	translator := NewTranslator()

	tests := []struct {
		name     string
		key      string
		locale   string
		expected string
	}{
		{name: "english message", key: ErrKeyGroupNotFound, locale: "en", expected: "Stacking group not found"},
		{name: "portuguese message", key: ErrKeyGroupNotFound, locale: "pt", expected: "Grupo de empilhamento não encontrado"},
		{name: "empty locale defaults to english", key: ErrKeyInvalidRequest, locale: "", expected: "Invalid request"},
		{name: "unsupported locale falls back to english", key: ErrKeyInvalidRequest, locale: "fr", expected: "Invalid request"},
		{name: "unknown key returns key", key: "unknown.key", locale: "pt", expected: "unknown.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, translator.Translate(tt.key, tt.locale))
		})
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		acceptLanguage string
		expected       string
	}{
		{name: "no header returns default", acceptLanguage: "", expected: DefaultLocale},
		{name: "portuguese header", acceptLanguage: "pt", expected: "pt"},
		{name: "region is stripped", acceptLanguage: "pt-BR", expected: "pt"},
		{name: "first supported wins on equal q", acceptLanguage: "en-US,pt", expected: "en"},
		{name: "higher q wins", acceptLanguage: "en;q=0.4, pt-BR;q=0.9", expected: "pt"},
		{name: "unsupported languages are skipped", acceptLanguage: "fr-FR,de;q=0.9,pt;q=0.1", expected: "pt"},
		{name: "only unsupported defaults", acceptLanguage: "fr,de", expected: DefaultLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptLanguage != "" {
				c.Request.Header.Set(AcceptLanguageHeader, tt.acceptLanguage)
			}

			assert.Equal(t, tt.expected, GetLocale(c))
		})
	}
}
