// Package protocol 定义会话代理的帧协议词汇表与参考文本编码（WebSocket 文本通道）。
package protocol

import (
	"encoding/json"
	"strconv"
)

// FrameType 帧类型
type FrameType int

const (
	// FrameHeartbeat 心跳帧，无负载
	FrameHeartbeat FrameType = iota
	// FrameOpen 会话建立通知帧
	FrameOpen
	// FrameMessage 单条消息帧
	FrameMessage
	// FrameMessageBatch 批量消息帧，顺序有意义
	FrameMessageBatch
	// FrameMessageBlob 二进制消息帧（保留，本核心不发送）
	FrameMessageBlob
	// FrameClose 会话关闭帧，携带关闭码
	FrameClose
)

// String 返回帧类型的字符串表示
func (t FrameType) String() string {
	switch t {
	case FrameHeartbeat:
		return "heartbeat"
	case FrameOpen:
		return "open"
	case FrameMessage:
		return "message"
	case FrameMessageBatch:
		return "message_batch"
	case FrameMessageBlob:
		return "message_blob"
	case FrameClose:
		return "close"
	default:
		return "unknown"
	}
}

// Frame 协议帧。一个会话生命周期内 Open 只发送一次，
// 且总是先于任何 Message/MessageBatch 帧。
type Frame struct {
	Type     FrameType
	Payload  string
	Payloads []string
	Blob     []byte
	Code     CloseCode
}

// Heartbeat 创建心跳帧
func Heartbeat() Frame {
	return Frame{Type: FrameHeartbeat}
}

// Open 创建会话建立帧
func Open() Frame {
	return Frame{Type: FrameOpen}
}

// Message 创建单条消息帧
func Message(payload string) Frame {
	return Frame{Type: FrameMessage, Payload: payload}
}

// MessageBatch 创建批量消息帧
func MessageBatch(payloads []string) Frame {
	return Frame{Type: FrameMessageBatch, Payloads: payloads}
}

// Close 创建关闭帧
func Close(code CloseCode) Frame {
	return Frame{Type: FrameClose, Code: code}
}

// IsClose 检查是否为关闭帧
func (f Frame) IsClose() bool {
	return f.Type == FrameClose
}

// EncodeText 编码为参考文本协议:
//
//	h            心跳
//	o            会话已建立
//	a[...]       消息（单条或批量均为 JSON 数组）
//	c[code,"r"]  会话关闭
//
// FrameMessageBlob 为保留类型，不可编码。
func (f Frame) EncodeText() (string, error) {
	switch f.Type {
	case FrameHeartbeat:
		return "h", nil
	case FrameOpen:
		return "o", nil
	case FrameMessage:
		data, err := json.Marshal([1]string{f.Payload})
		if err != nil {
			return "", err
		}
		return "a" + string(data), nil
	case FrameMessageBatch:
		payloads := f.Payloads
		if payloads == nil {
			payloads = []string{}
		}
		data, err := json.Marshal(payloads)
		if err != nil {
			return "", err
		}
		return "a" + string(data), nil
	case FrameClose:
		reason, err := json.Marshal(f.Code.Reason)
		if err != nil {
			return "", err
		}
		return "c[" + strconv.Itoa(f.Code.Num) + "," + string(reason) + "]", nil
	default:
		return "", ErrFrameNotEncodable
	}
}
