package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/xsockjs/pkg/protocol"
	"github.com/lk2023060901/xsockjs/pkg/session"
)

// echoHandler 把收到的负载原样回发给会话
type echoHandler struct {
	registry *session.BaseRegistry
	sid      string
}

func (h *echoHandler) OnOpened(sid string)  {}
func (h *echoHandler) OnClosed(sid string)  {}
func (h *echoHandler) OnMessage(sid string, payload string) {
	h.registry.Send(sid, protocol.Message(payload))
}

type testEnv struct {
	registry *session.BaseRegistry
	server   *Server
	httpSrv  *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	var registry *session.BaseRegistry
	factory := func(sid string) session.SessionHandler {
		return &echoHandler{registry: registry, sid: sid}
	}
	r, err := session.NewBaseRegistry(session.DefaultConfig(), factory, nil)
	require.NoError(t, err)
	registry = r

	srv, err := NewServer(DefaultServerConfig(), registry)
	require.NoError(t, err)

	httpSrv := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		httpSrv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.CloseWithContext(ctx)
		_ = registry.Stop(ctx)
	})

	return &testEnv{registry: registry, server: srv, httpSrv: httpSrv}
}

func (e *testEnv) dial(t *testing.T, sid string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.httpSrv.URL, "http") + "/echo/000/" + sid + "/websocket"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

// waitDetached 等待服务端完成会话交还
func (e *testEnv) waitDetached(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.server.GetConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTransport_OpenAndEcho(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "abc123")

	assert.Equal(t, "o", readText(t, conn))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`["hello"]`)))
	assert.Equal(t, `a["hello"]`, readText(t, conn))

	// 无括号形式同样可达
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`"plain"`)))
	assert.Equal(t, `a["plain"]`, readText(t, conn))
}

func TestTransport_FirstFrameAlwaysOpen(t *testing.T) {
	env := newTestEnv(t)

	// 握手挂载不依赖请求上下文的存活时长，
	// 每条新连接的第一帧都必须是 o
	for i := 0; i < 50; i++ {
		sid := "open-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		conn := env.dial(t, sid)
		require.Equal(t, "o", readText(t, conn), "connection %d", i)
		_ = conn.Close()
	}
}

func TestTransport_IgnoredFrames(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "s1")
	assert.Equal(t, "o", readText(t, conn))

	// 空文本与空数组不产生任何投递，连接保持可用
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("[]")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`["after"]`)))
	assert.Equal(t, `a["after"]`, readText(t, conn))
}

func TestTransport_BinaryIsDropped(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "s1")
	assert.Equal(t, "o", readText(t, conn))

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`["still alive"]`)))
	assert.Equal(t, `a["still alive"]`, readText(t, conn))
}

func TestTransport_MalformedPayloadCloses(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "bad1")
	assert.Equal(t, "o", readText(t, conn))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`["unterminated`)))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, protocol.CodeInvalidPayload.Num),
		"expected close %d, got %v", protocol.CodeInvalidPayload.Num, err)
}

func TestTransport_SecondAttachRejected(t *testing.T) {
	env := newTestEnv(t)
	first := env.dial(t, "dup1")
	assert.Equal(t, "o", readText(t, first))

	second := env.dial(t, "dup1")
	assert.Equal(t, `c[2010,"Another connection still open"]`, readText(t, second))

	// 原挂载不受影响
	require.NoError(t, first.WriteMessage(websocket.TextMessage, []byte(`["mine"]`)))
	assert.Equal(t, `a["mine"]`, readText(t, first))
}

func TestTransport_GracefulCloseThenGoAway(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "bye1")
	assert.Equal(t, "o", readText(t, conn))

	// 正常关闭握手，会话进入关闭终态
	deadline := time.Now().Add(time.Second)
	require.NoError(t, conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline))
	env.waitDetached(t)

	again := env.dial(t, "bye1")
	assert.Equal(t, `c[3000,"Go away!"]`, readText(t, again))
}

func TestTransport_AbruptCloseThenInterrupted(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "drop1")
	assert.Equal(t, "o", readText(t, conn))

	// 不走关闭握手直接断开，会话进入中断终态
	require.NoError(t, conn.Close())
	env.waitDetached(t)

	again := env.dial(t, "drop1")
	assert.Equal(t, `c[1002,"Connection interrupted"]`, readText(t, again))
}

func TestTransport_TerminalStateDropsBuffered(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "re1")
	assert.Equal(t, "o", readText(t, conn))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`["warmup"]`)))
	assert.Equal(t, `a["warmup"]`, readText(t, conn))

	require.NoError(t, conn.Close())
	env.waitDetached(t)

	// 中断之后入缓冲的帧不会随重新挂载回放
	env.registry.Send("re1", protocol.Message("one"))
	env.registry.Send("re1", protocol.Message("two"))

	again := env.dial(t, "re1")
	assert.Equal(t, `c[1002,"Connection interrupted"]`, readText(t, again))
}

func TestTransport_BroadcastHeartbeat(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "hb1")
	assert.Equal(t, "o", readText(t, conn))

	env.registry.Broadcast(protocol.Heartbeat())
	assert.Equal(t, "h", readText(t, conn))
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "abc123", SessionID("/echo/000/abc123/websocket"))
	assert.Equal(t, "s-1", SessionID("/prefix/server/s-1/websocket/"))

	// 非标准路径退化为随机标识
	generated := SessionID("/websocket")
	assert.NotEmpty(t, generated)
	assert.NotEqual(t, "websocket", generated)
}
