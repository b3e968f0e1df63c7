package response

import "gift-service/internal/core/apperr"

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// FromError 业务错误 Kind → 错误码；底层错误细节不回传客户端
func FromError(err error) Resp {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return Error(CodeNotFound, err.Error())
	case apperr.KindConflict:
		return Error(CodeConflict, err.Error())
	case apperr.KindForbidden:
		return Error(CodeForbidden, err.Error())
	case apperr.KindUnauthorized:
		return Error(CodeUnauthorized, err.Error())
	case apperr.KindValidation:
		return Error(CodeBadRequest, err.Error())
	default:
		return Error(CodeServerError, "")
	}
}
