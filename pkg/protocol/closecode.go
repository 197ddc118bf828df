package protocol

// CloseCode 会话关闭原因，数字码加可读描述
type CloseCode struct {
	Num    int
	Reason string
}

// 固定的关闭码词汇表
var (
	// CodeInterrupted 传输异常中断
	CodeInterrupted = CloseCode{Num: 1002, Reason: "Connection interrupted"}

	// CodeInvalidPayload 入站负载 JSON 解码失败
	CodeInvalidPayload = CloseCode{Num: 1007, Reason: "Broken JSON encoding"}

	// CodeAcquired 会话已被其他连接占用
	CodeAcquired = CloseCode{Num: 2010, Reason: "Another connection still open"}

	// CodeInternalError 内部错误
	CodeInternalError = CloseCode{Num: 2011, Reason: "Internal error"}

	// CodeGoAway 会话已由对端正常关闭
	CodeGoAway = CloseCode{Num: 3000, Reason: "Go away!"}
)
