package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestResponseFieldPaths(t *testing.T) {
	resp := Response{
		StatusCode: 422,
		Body: []byte(`{"detail":[{"type":"missing","loc":["body","email"],"msg":"Field required"},` +
			`{"type":"missing","loc":["body","password"]}]}`),
	}
	assert.Equal(t, ldvalue.String("missing"), resp.Field("detail[0].type"))
	assert.Equal(t, ldvalue.String("Field required"), resp.Field("detail[0].msg"))
	assert.Equal(t, ldvalue.String("password"), resp.Field("detail[1].loc[1]"))
	assert.Equal(t, ldvalue.String("email"), resp.Field("$.detail[0].loc[1]"))
	assert.True(t, resp.Field("detail[5].type").IsNull())
	assert.True(t, resp.Field("detail.type").IsNull())
	assert.True(t, resp.Field("nope").IsNull())
}

func TestResponseJSONWithInvalidBody(t *testing.T) {
	assert.True(t, Response{Body: []byte("not json")}.JSON().IsNull())
	assert.True(t, Response{}.JSON().IsNull())
}

func TestResponseIsSuccess(t *testing.T) {
	assert.True(t, Response{StatusCode: 200}.IsSuccess())
	assert.True(t, Response{StatusCode: 204}.IsSuccess())
	assert.False(t, Response{StatusCode: 404}.IsSuccess())
}

func TestIDString(t *testing.T) {
	s, ok := IDString(ldvalue.Int(7))
	assert.True(t, ok)
	assert.Equal(t, "7", s)

	s, ok = IDString(ldvalue.String("abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	_, ok = IDString(ldvalue.Null())
	assert.False(t, ok)
	_, ok = IDString(ldvalue.String(""))
	assert.False(t, ok)
}
