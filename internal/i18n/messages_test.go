package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCatalogKnownLang(t *testing.T) {
	c := NewCatalog("en")
	assert.Equal(t, "Invalid credentials", c.Get(MsgInvalidCredentials))
}

func TestNewCatalogFallsBackToDefault(t *testing.T) {
	c := NewCatalog("fr")
	assert.Equal(t, "Credenciales Invalidas", c.Get(MsgInvalidCredentials))
}

func TestGetUnknownKeyReturnsKey(t *testing.T) {
	c := NewCatalog("es")
	assert.Equal(t, "nope", c.Get(Key("nope")))
}

func TestAllKeysPresentInEveryLanguage(t *testing.T) {
	keys := []Key{
		MsgMissingFields,
		MsgPasswordTooShort,
		MsgInvalidEmail,
		MsgUserExists,
		MsgInvalidCredentials,
		MsgProfilePicRequired,
		MsgLogoutOK,
		MsgInternalError,
		MsgTooManyRequests,
		MsgInvalidRequestBody,
	}
	for lang, messages := range catalogs {
		for _, k := range keys {
			_, ok := messages[k]
			assert.True(t, ok, "lang %s missing key %s", lang, k)
		}
	}
}
