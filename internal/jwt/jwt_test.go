package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isodigm/blogcms/internal/domain"
)

var secretKey = "testJwtKey"
var user = domain.User{Id: 1, Username: "alice", Admin: false}

func TestDecodeTokenCorrect(t *testing.T) {
	j := New(secretKey, 10*time.Second)
	token, err := j.NewToken(user)
	require.NoError(t, err)

	uid, admin, err := j.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.UserId(1), uid)
	assert.False(t, admin)
}

func TestDecodeTokenAdminClaim(t *testing.T) {
	j := New(secretKey, 10*time.Second)
	token, err := j.NewToken(domain.User{Id: 7, Admin: true})
	require.NoError(t, err)

	uid, admin, err := j.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.UserId(7), uid)
	assert.True(t, admin)
}

func TestDecodeTokenExpired(t *testing.T) {
	j := New(secretKey, time.Hour)
	token, err := j.NewToken(user)
	require.NoError(t, err)

	// Advance the clock past expiry
	j.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, _, err = j.DecodeToken(token)
	assert.Error(t, err, "expired token must not decode")
}

func TestDecodeTokenInvalidSecretKey(t *testing.T) {
	token, err := New(secretKey, 10*time.Second).NewToken(user)
	require.NoError(t, err)

	_, _, err = New("invalidSecret", 10*time.Second).DecodeToken(token)
	assert.Error(t, err, "token signed with another secret must not decode")
}

func TestDecodeTokenMalformed(t *testing.T) {
	j := New(secretKey, 10*time.Second)

	_, _, err := j.DecodeToken("not.a.token")
	assert.Error(t, err)
}

func TestExpiredAndMalformedIndistinguishable(t *testing.T) {
	j := New(secretKey, time.Hour)
	token, err := j.NewToken(user)
	require.NoError(t, err)
	j.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, _, expiredErr := j.DecodeToken(token)
	_, _, malformedErr := j.DecodeToken("garbage")

	require.Error(t, expiredErr)
	require.Error(t, malformedErr)
	assert.Equal(t, expiredErr.Error(), malformedErr.Error(),
		"callers must not be able to tell expired from malformed")
}
