package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/autopartes-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConModulos(t *testing.T) {
	worker := int64(7)
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{
		UserID:   42,
		Username: "caja1",
		WorkerID: &worker,
		Modules:  []string{"ventas", "clientes"},
	}, "autopartes-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "caja1", claims.Username)
	assert.False(t, claims.IsAdmin)
	require.NotNil(t, claims.WorkerID)
	assert.Equal(t, int64(7), *claims.WorkerID)
	assert.Equal(t, []string{"ventas", "clientes"}, claims.Modules)
	assert.Equal(t, "42", claims.Subject)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{UserID: 1, IsAdmin: true}, "autopartes-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{UserID: 1}, "autopartes-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Subject{UserID: 1}, "x", 60)
	assert.Error(t, err)
}
