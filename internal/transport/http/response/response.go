package response

import "kunstcollectie/internal/domain"

type Resp struct {
	Success    bool               `json:"success"`
	Code       int                `json:"code"`
	Message    string             `json:"message"`
	Data       any                `json:"data,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

// OK 成功响应（data 为 nil 时输出 {}）
func OK(data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Success: true, Code: CodeOK, Message: CodeMsgMap[CodeOK], Data: data}
}

// Page 列表响应
func Page(items any, p domain.Pagination) Resp {
	r := OK(items)
	r.Pagination = &p
	return r
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Resp{Success: false, Code: code, Message: msg}
}
