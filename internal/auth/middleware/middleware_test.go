package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/mindengage-diagnostic/internal/rbac"
)

func TestIssueParse(t *testing.T) {
	a := NewAuthService("s3cret")
	tok, err := a.IssueJWT("alice", rbac.RoleFacilitator)
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Sub)
	assert.Equal(t, rbac.RoleFacilitator, c.Role)

	_, err = NewAuthService("other").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = a.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginPolicy_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	p := LoginPolicy{AdminUser: "admin", AdminPassHash: string(hash), DevLogin: true}

	assert.Equal(t, rbac.RoleAdmin, p.Authenticate("admin", "hunter2", ""))
	assert.Equal(t, "", p.Authenticate("admin", "admin", rbac.RoleFacilitator))
	assert.Equal(t, rbac.RoleFacilitator, p.Authenticate("fac", "fac", rbac.RoleFacilitator))
	assert.Equal(t, rbac.RoleRespondent, p.Authenticate("bob", "bob", rbac.RoleRespondent))
	assert.Equal(t, "", p.Authenticate("bob", "bob", rbac.RoleAdmin))
	assert.Equal(t, "", p.Authenticate("bob", "nope", rbac.RoleRespondent))

	p.DevLogin = false
	assert.Equal(t, "", p.Authenticate("bob", "bob", rbac.RoleRespondent))
}

func TestLoginHandler(t *testing.T) {
	a := NewAuthService("s3cret")
	h := LoginHandler(a, LoginPolicy{DevLogin: true})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"bob","password":"bob","role":"respondent"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, rbac.RoleRespondent, out["role"])
	c, err := a.Parse(out["access_token"])
	require.NoError(t, err)
	assert.Equal(t, "bob", c.Sub)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"bob","password":"x"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJWTMiddleware_PutsPrincipalInContext(t *testing.T) {
	a := NewAuthService("s3cret")
	var got Principal
	h := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PrincipalFromContext(r.Context())
	}))

	tok, err := a.IssueJWT("carol", rbac.RoleRespondent)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Principal{Subject: "carol", Role: rbac.RoleRespondent}, got)
	assert.False(t, got.SeesAll())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
