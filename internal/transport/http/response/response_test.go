package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"gift-service/internal/core/apperr"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{apperr.NotFound("no such wish"), CodeNotFound, "no such wish"},
		{apperr.Conflict("taken"), CodeConflict, "taken"},
		{apperr.Forbidden("not yours"), CodeForbidden, "not yours"},
		{apperr.Unauthorized("bad token"), CodeUnauthorized, "bad token"},
		{apperr.Validation("bad amount"), CodeBadRequest, "bad amount"},
	}
	for _, tc := range cases {
		r := FromError(tc.err)
		assert.Equal(t, tc.code, r.Code)
		assert.Equal(t, tc.msg, r.Msg)
	}
}

// 内部错误细节不能透给客户端
func TestFromErrorInternalHidesDetail(t *testing.T) {
	r := FromError(apperr.Internal("db", errors.New("dsn=postgres://secret")))
	assert.Equal(t, CodeServerError, r.Code)
	assert.Equal(t, CodeMsgMap[CodeServerError], r.Msg)
	assert.NotContains(t, r.Msg, "secret")

	r = FromError(errors.New("plain"))
	assert.Equal(t, CodeServerError, r.Code)
}

func TestOKNeverNullData(t *testing.T) {
	r := OK(nil)
	assert.NotNil(t, r.Data)
	assert.Equal(t, CodeOK, r.Code)
}
