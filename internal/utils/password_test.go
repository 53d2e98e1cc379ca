package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEVerificarSenha(t *testing.T) {
	hash, err := HashSenha("minha-senha")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "minha-senha", hash)

	assert.True(t, VerificarSenha(hash, "minha-senha"))
	assert.False(t, VerificarSenha(hash, "outra-senha"))
	assert.False(t, VerificarSenha("hash-quebrado", "minha-senha"))
}
