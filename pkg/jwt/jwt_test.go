package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_ConservaIdentidad(t *testing.T) {
	in := pkgjwt.Identity{UserID: "u-1", Email: "op@estoque.test", Role: "estoquista"}
	tok, err := pkgjwt.Generate(secret, in, "estoque-api", 60)
	require.NoError(t, err)

	out, err := pkgjwt.Parse(secret, tok)

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParse_Rechaza(t *testing.T) {
	expired, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u-1"}, "", -1)
	require.NoError(t, err)
	noSub, err := pkgjwt.Generate(secret, pkgjwt.Identity{Role: "admin"}, "", 60)
	require.NoError(t, err)
	valid, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u-1"}, "", 60)
	require.NoError(t, err)

	for name, tc := range map[string]struct{ secret, token string }{
		"vencido":        {secret, expired},
		"sin sub":        {secret, noSub},
		"otro secreto":   {"otro", valid},
		"secreto vacío":  {"", valid},
		"no es un token": {secret, "abc"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := pkgjwt.Parse(tc.secret, tc.token)
			assert.Error(t, err)
		})
	}

	_, err = pkgjwt.Generate("", pkgjwt.Identity{UserID: "u-1"}, "", 60)
	assert.Error(t, err)
}
