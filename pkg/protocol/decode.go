package protocol

import (
	"encoding/json"
	"errors"
)

var (
	// ErrMalformedPayload 入站文本不是合法的 JSON 负载
	ErrMalformedPayload = errors.New("protocol: malformed payload")

	// ErrFrameNotEncodable 帧类型没有文本编码
	ErrFrameNotEncodable = errors.New("protocol: frame not encodable")
)

// DecodePayloads 解码客户端入站文本。
// 以 '[' 开头的文本解析为 JSON 字符串数组；否则整段文本作为
// JSON 值解析，字符串数组或单个字符串都视为合法。
// 空文本与退化形式 "[]" 被忽略，返回 nil 负载。
func DecodePayloads(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		if len(data) <= 2 {
			return nil, nil
		}
		var payloads []string
		if err := json.Unmarshal(data, &payloads); err != nil {
			return nil, ErrMalformedPayload
		}
		return payloads, nil
	}

	// 无括号形式：优先按数组解析，失败则按单个字符串处理
	var payloads []string
	if err := json.Unmarshal(data, &payloads); err == nil {
		return payloads, nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		return []string{single}, nil
	}
	return nil, ErrMalformedPayload
}
