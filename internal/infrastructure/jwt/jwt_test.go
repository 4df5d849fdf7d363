package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	s := New("super-secret")

	tok, err := s.GenerateJWT(42, []string{"user", "admin"}, time.Hour)
	require.NoError(t, err, "GenerateJWT should not error")
	require.NotEmpty(t, tok, "token must not be empty")

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err, "ValidateToken should not error for fresh token")
	require.NotNil(t, claims)

	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, []string{"user", "admin"}, claims.Roles)
	assert.True(t, claims.IsAdmin())
	assert.NotEmpty(t, claims.ID, "jti must be set")
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now().Add(-1*time.Second)))
}

func TestGenerate_UniqueTokenIDs(t *testing.T) {
	s := New("k")

	a, err := s.GenerateJWT(1, []string{"user"}, time.Hour)
	require.NoError(t, err)
	b, err := s.GenerateJWT(1, []string{"user"}, time.Hour)
	require.NoError(t, err)

	ca, err := s.ValidateToken(a)
	require.NoError(t, err)
	cb, err := s.ValidateToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestClaims_IsAdmin(t *testing.T) {
	assert.False(t, (&Claims{Roles: []string{"user"}}).IsAdmin())
	assert.False(t, (&Claims{}).IsAdmin())
	assert.True(t, (&Claims{Roles: []string{"admin"}}).IsAdmin())
}

func TestValidateToken_Table(t *testing.T) {
	type fields struct {
		secret string
	}
	type want struct {
		ok    bool
		err   string
		check func(t *testing.T, c *Claims)
	}

	makeToken := func(secret string, exp time.Duration) string {
		s := New(secret)
		tok, err := s.GenerateJWT(7, []string{"user"}, exp)
		require.NoError(t, err)
		return tok
	}
	foreignToken := func(method jwtv5.SigningMethod, key any, claims jwtv5.Claims) string {
		tok, err := jwtv5.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name   string
		fields fields
		token  string
		want   want
	}{
		{
			name:   "valid token",
			fields: fields{secret: "k1"},
			token:  makeToken("k1", 5*time.Minute),
			want: want{
				ok: true,
				check: func(t *testing.T, c *Claims) {
					assert.Equal(t, uint64(7), c.UserID)
					assert.Equal(t, []string{"user"}, c.Roles)
					assert.False(t, c.IsAdmin())
				},
			},
		},
		{
			name:   "invalid secret (signature mismatch)",
			fields: fields{secret: "k2"},
			token:  makeToken("k1", 5*time.Minute),
			want:   want{err: "invalid token"},
		},
		{
			name:   "expired token",
			fields: fields{secret: "k1"},
			token:  makeToken("k1", -1*time.Minute),
			want:   want{err: "invalid token"},
		},
		{
			name:   "malformed token string",
			fields: fields{secret: "k1"},
			token:  "not-a-jwt",
			want:   want{err: "invalid token"},
		},
		{
			name:   "unsigned token",
			fields: fields{secret: "k1"},
			token: foreignToken(jwtv5.SigningMethodNone, jwtv5.UnsafeAllowNoneSignatureType, Claims{
				UserID: 1,
				Roles:  []string{"admin"},
				RegisteredClaims: jwtv5.RegisteredClaims{
					ID:        "x",
					ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}),
			want: want{err: "invalid token"},
		},
		{
			name:   "missing expiry",
			fields: fields{secret: "k1"},
			token:  foreignToken(jwtv5.SigningMethodHS256, []byte("k1"), Claims{UserID: 1, RegisteredClaims: jwtv5.RegisteredClaims{ID: "x"}}),
			want:   want{err: "invalid token"},
		},
		{
			name:   "missing token id",
			fields: fields{secret: "k1"},
			token: foreignToken(jwtv5.SigningMethodHS256, []byte("k1"), Claims{
				UserID: 1,
				RegisteredClaims: jwtv5.RegisteredClaims{
					ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}),
			want: want{err: "invalid claims"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.fields.secret)

			claims, err := s.ValidateToken(tt.token)
			if tt.want.ok {
				require.NoError(t, err)
				require.NotNil(t, claims)
				if tt.want.check != nil {
					tt.want.check(t, claims)
				}
			} else {
				require.Error(t, err)
				assert.EqualError(t, err, tt.want.err)
				assert.Nil(t, claims)
			}
		})
	}
}
