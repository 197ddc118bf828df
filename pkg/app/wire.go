package app

import (
	"github.com/google/wire"
)

// AppComponents 收集 Wire 注入的组件
type AppComponents struct {
	Servers []Server
	Closers []Closer
}

// ProviderSet 导出给 Wire 使用
var ProviderSet = wire.NewSet(NewBaseApp)

// InitApp 把注入的组件绑定到宿主
func InitApp(app *BaseApp, comps AppComponents) *BaseApp {
	app.AppendServer(comps.Servers...)
	app.AppendCloser(comps.Closers...)
	return app
}
