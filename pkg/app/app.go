// pkg/app/app.go
package app

import (
	"fmt"
	"os"

	"simvault/pkg/report"
	"simvault/pkg/timing"

	"github.com/spf13/viper"
)

// App 是整个应用程序的依赖容器
// 它持有各命令共享的“单例”：输出 sink 和存储目录
type App struct {
	Sink report.Sink
	Dir  string // 默认的对象目录 (storage.dir)
}

// NewApp 是工厂函数，按 Viper 的配置组装依赖
// 它不知道具体的 CLI 命令长什么样
func NewApp() (*App, error) {
	dir := viper.GetString("storage.dir")
	if dir == "" {
		return nil, fmt.Errorf("storage dir not set")
	}

	return &App{
		Sink: report.NewConsole(os.Stdout),
		Dir:  dir,
	}, nil
}

// NewTimer 为一次操作创建计时器，挂在共享的 sink 上
func (a *App) NewTimer(name string) *timing.Timer {
	return timing.NewTimer(name, a.Sink)
}
