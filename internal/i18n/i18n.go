package i18n

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the client sends no supported language.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in catalogs.
func NewTranslator() *Translator {
	return &Translator{messages: catalogs}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has a message catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale, falling back to the
// default locale and finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the supported language with the highest q value from
// Accept-Language. Ties keep header order.
func GetLocale(c *gin.Context) string {
	return ParseAcceptLanguage(c.GetHeader(AcceptLanguageHeader))
}

// ParseAcceptLanguage implements GetLocale on a raw header value.
func ParseAcceptLanguage(header string) string {
	if header == "" {
		return DefaultLocale
	}

	t := GetTranslator()
	best := DefaultLocale
	bestQ := -1.0
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		lang := strings.ToLower(strings.TrimSpace(fields[0]))
		if idx := strings.IndexByte(lang, '-'); idx > 0 {
			lang = lang[:idx]
		}
		if !t.Supports(lang) {
			continue
		}

		q := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if strings.HasPrefix(param, "q=") {
				if v, err := strconv.ParseFloat(param[2:], 64); err == nil {
					q = v
				}
			}
		}
		if q > bestQ {
			best, bestQ = lang, q
		}
	}
	return best
}

var catalogs = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:      "Invalid request",
		ErrKeyInvalidRequestBody:  "Invalid request body",
		ErrKeyInternalError:       "An unexpected error occurred",
		ErrKeyAPIKeyRequired:      "API key is required",
		ErrKeyInvalidAPIKey:       "Invalid API key",
		ErrKeyNotFound:            "Not found",
		ErrKeyRateLimitExceeded:   "Too many requests, please try again later",
		ErrKeyTimeout:             "The request took too long to complete",
		ErrKeyGroupNotFound:       "Stacking group not found",
		ErrKeyInvalidGroup:        "Invalid stacking group definition",
		ErrKeyInvalidCart:         "Invalid cart",
		ErrKeyCartTooLarge:        "Cart has too many units to simulate",
		ErrKeyUnknownStrategy:     "Unknown stacking strategy",
		ErrKeyCatalogUnavailable:  "Stacking catalog is unavailable",
		ErrKeyIdempotencyConflict: "Idempotency key was already used with a different request",
		ErrKeyIdempotencyInFlight: "A request with this idempotency key is still being processed",
	},
	"pt": {
		ErrKeyInvalidRequest:      "Requisição inválida",
		ErrKeyInvalidRequestBody:  "Corpo da requisição inválido",
		ErrKeyInternalError:       "Ocorreu um erro inesperado",
		ErrKeyAPIKeyRequired:      "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:       "Chave de API inválida",
		ErrKeyNotFound:            "Não encontrado",
		ErrKeyRateLimitExceeded:   "Muitas requisições, tente novamente mais tarde",
		ErrKeyTimeout:             "A requisição demorou demais para ser concluída",
		ErrKeyGroupNotFound:       "Grupo de empilhamento não encontrado",
		ErrKeyInvalidGroup:        "Definição de grupo de empilhamento inválida",
		ErrKeyInvalidCart:         "Carrinho inválido",
		ErrKeyCartTooLarge:        "O carrinho tem unidades demais para simular",
		ErrKeyUnknownStrategy:     "Estratégia de empilhamento desconhecida",
		ErrKeyCatalogUnavailable:  "Catálogo de empilhamento indisponível",
		ErrKeyIdempotencyConflict: "A chave de idempotência já foi usada com outra requisição",
		ErrKeyIdempotencyInFlight: "Uma requisição com esta chave de idempotência ainda está em processamento",
	},
}
