package scenario

import (
	"testing"

	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestStateGetMissingKey(t *testing.T) {
	s := NewState()
	_, err := s.Get("nope")
	var me *MissingStateError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "nope", me.Key)
	assert.True(t, IsFatal(err))
}

func TestStateEmptyStringIsNotAbsent(t *testing.T) {
	s := NewState()
	s.Set("k", "")
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, ldvalue.String(""), v)
	assert.True(t, s.Has("k"))
}

func TestStateSetOverwrites(t *testing.T) {
	s := NewState()
	s.SetAuthToken("Bearer a")
	s.SetAuthToken("Bearer b")
	token, err := s.AuthToken()
	require.NoError(t, err)
	assert.Equal(t, "Bearer b", token)
}

func TestStateAuthTokenIfSet(t *testing.T) {
	s := NewState()
	assert.False(t, s.AuthTokenIfSet().IsDefined())
	s.SetAuthToken("Bearer x")
	assert.Equal(t, ldvalue.NewOptionalString("Bearer x"), s.AuthTokenIfSet())
}

func TestStateIdentityRequiresBothFields(t *testing.T) {
	s := NewState()
	s.Set(KeyEmail, "u1@gmail.com")
	_, err := s.Identity()
	assert.Error(t, err)

	s.SetIdentity(Identity{Email: "u1@gmail.com", Password: "p1"})
	id, err := s.Identity()
	require.NoError(t, err)
	assert.Equal(t, Identity{Email: "u1@gmail.com", Password: "p1"}, id)
}

func TestStateDeleteClearsCreatedID(t *testing.T) {
	s := NewState()
	_, err := s.CreatedResourceID()
	assert.Error(t, err)

	s.SetCreatedResourceID("5")
	s.MarkResourceDeleted("5")
	_, err = s.CreatedResourceID()
	assert.Error(t, err)
	deleted, err := s.DeletedResourceID()
	require.NoError(t, err)
	assert.Equal(t, "5", deleted)
}

func TestStateDeletingOtherResourceKeepsCreatedID(t *testing.T) {
	s := NewState()
	s.SetCreatedResourceID("5")
	s.MarkResourceDeleted("6")
	id, err := s.CreatedResourceID()
	require.NoError(t, err)
	assert.Equal(t, "5", id)
}

func TestStateLastResponse(t *testing.T) {
	s := NewState()
	_, err := s.LastResponse("login")
	assert.Error(t, err)
	s.RecordResponse("login", harness.ResponseSummary{StatusCode: 200})
	r, err := s.LastResponse("login")
	require.NoError(t, err)
	assert.Equal(t, 200, r.StatusCode)
}

func TestStateKeys(t *testing.T) {
	s := NewState()
	s.SetCreatedResourceID("1")
	s.SetAuthToken("t")
	assert.Equal(t, []string{KeyAuthToken, KeyCreatedResourceID}, s.Keys())
	s.Clear(KeyAuthToken)
	assert.Equal(t, []string{KeyCreatedResourceID}, s.Keys())
}

func TestStateExpectedFieldsAbsentUntilSet(t *testing.T) {
	s := NewState()
	_, err := s.ExpectedFields()
	var me *MissingStateError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, KeyExpectedFields, me.Key)

	s.SetExpectedFields(harness.NewFieldMap("b", 2, "a", "x"))
	fields, err := s.ExpectedFields()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fields.Keys())
	assert.Equal(t, ldvalue.Int(2), fields.Value("b"))
}

func TestStateFieldsOfWrongTypeIsConfigurationError(t *testing.T) {
	s := NewState()
	s.Set("f", "not a map")
	_, err := s.Fields("f")
	require.Error(t, err)
	assert.True(t, IsFatal(err))
}

func TestStateTrackedResources(t *testing.T) {
	s := NewState()
	_, err := s.TrackedResources()
	assert.Error(t, err)

	s.TrackResource("1", "first")
	s.TrackResource("2", "second")
	s.TrackResource("1", "renamed")
	live, err := s.TrackedResources()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "renamed", "2": "second"}, live)

	s.MarkResourceDeleted("1")
	s.MarkResourceDeleted("2")
	live, err = s.TrackedResources()
	require.NoError(t, err)
	assert.Empty(t, live)
}
