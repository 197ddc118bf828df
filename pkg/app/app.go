package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lk2023060901/xsockjs/pkg/logger"
)

var ErrAppAlreadyRunning = errors.New("app: already running")

// Server 可启动的长驻服务。Start 必须立即返回，监听循环自行起 goroutine。
type Server interface {
	Start() error
	Stop() error
}

// GracefulServer 支持先排空再停止的服务
type GracefulServer interface {
	Server
	GracefulStop() error
}

// Closer 进程退出前需要释放的资源
type Closer interface {
	Close() error
}

// BaseApp 服务进程的生命周期宿主：启动全部 Server，
// 等待退出信号，停止 Server 后按注册逆序关闭 Closer。
// 关闭顺序决定停机语义，依赖方先于被依赖方注册。
type BaseApp struct {
	opts    Options
	logger  logger.Logger
	named   *LoggerRegistry
	servers []Server
	closers []Closer

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex

	started atomic.Bool
	stopped atomic.Bool
}

// NewBaseApp 创建生命周期宿主
func NewBaseApp(opts ...Option) *BaseApp {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &BaseApp{
		opts:   o,
		logger: o.Logger.Named(o.Name),
		named:  NewLoggerRegistry(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AppendServer 注册服务，Run 时按注册顺序启动
func (a *BaseApp) AppendServer(srv ...Server) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.servers = append(a.servers, srv...)
}

// AppendCloser 注册资源，Shutdown 时按注册逆序关闭
func (a *BaseApp) AppendCloser(closer ...Closer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, closer...)
}

// Logger 获取具名 Logger，未注册时返回 nil
func (a *BaseApp) Logger(name string) logger.Logger {
	return a.named.Get(name)
}

// AppLogger 获取应用主日志对象
func (a *BaseApp) AppLogger() logger.Logger {
	return a.logger
}

// Run 启动全部服务并阻塞，收到 SIGINT/SIGTERM 后执行 Shutdown
func (a *BaseApp) Run() error {
	if !a.started.CompareAndSwap(false, true) {
		return ErrAppAlreadyRunning
	}

	if len(a.opts.NamedLoggers) > 0 {
		if err := a.named.InitLoggers(a.opts.NamedLoggers); err != nil {
			a.logger.Error("failed to initialize named loggers", "error", err)
			return err
		}
	}

	info := GetInfo()
	a.logger.Info("application starting",
		"name", info.AppName,
		"version", info.Version,
		"commit", info.GitCommit,
		"go_version", info.GoVersion,
		"id", a.opts.ID,
	)

	for _, srv := range a.servers {
		if err := srv.Start(); err != nil {
			a.logger.Error("failed to start server", "error", err)
			return err
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		a.logger.Info("received signal, shutting down", "signal", sig.String())
	case <-a.ctx.Done():
		a.logger.Info("context cancelled, shutting down")
	}

	return a.Shutdown()
}

// Shutdown 停止服务并释放资源，幂等
func (a *BaseApp) Shutdown() error {
	if !a.stopped.CompareAndSwap(false, true) {
		return nil
	}
	a.cancel()

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopServers()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("failed to close component", "error", err)
		}
	}

	a.named.SyncAll()
	a.logger.Info("application exited")
	_ = a.logger.Sync()
	return nil
}

// stopServers 并发停止全部服务，超过 StopTimeout 不再等待
func (a *BaseApp) stopServers() {
	var wg sync.WaitGroup
	for _, srv := range a.servers {
		wg.Add(1)
		go func(s Server) {
			defer wg.Done()
			var err error
			if gs, ok := s.(GracefulServer); ok {
				err = gs.GracefulStop()
			} else {
				err = s.Stop()
			}
			if err != nil {
				a.logger.Error("failed to stop server", "error", err)
			}
		}(srv)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("all servers stopped")
	case <-time.After(a.opts.StopTimeout):
		a.logger.Warn("server stop timeout, continuing shutdown")
	}
}
