package session

import (
	"github.com/lk2023060901/xsockjs/pkg/protocol"
)

// ChannelItemKind 帧流条目类型
type ChannelItemKind int

const (
	// ItemFrame 普通帧投递
	ItemFrame ChannelItemKind = iota
	// ItemReady 积压回放完成信号。传输端在收到 Ready 之前
	// 不得向线路直接发送实时帧，否则会与缓冲历史交错。
	ItemReady
)

// ChannelItem 注册表推送给传输端的帧流条目
type ChannelItem struct {
	Kind  ChannelItemKind
	Frame protocol.Frame
}

// FrameItem 创建帧条目
func FrameItem(f protocol.Frame) ChannelItem {
	return ChannelItem{Kind: ItemFrame, Frame: f}
}

// ReadyItem 创建 Ready 信号条目
func ReadyItem() ChannelItem {
	return ChannelItem{Kind: ItemReady}
}
