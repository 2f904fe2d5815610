package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_IdaYVuelta(t *testing.T) {
	token, err := GenerateJWT("sess-123", "ana@mail.com", "admin")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", claims["session_id"])
	assert.Equal(t, "ana@mail.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}

func TestParseJWT_RechazaTokenAjeno(t *testing.T) {
	_, err := ParseJWT("no.es.unjwt")
	assert.Error(t, err)
}
