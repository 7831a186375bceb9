package store

import (
	"log/slog"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile 是目录里可选的排除规则文件，gitignore 语法
// 它自己以点开头，天然对枚举隐身
const IgnoreFile = ".storeignore"

// matcher 封装目录级的忽略判断
// 没有规则文件时它是个永远不命中的空壳
type matcher struct {
	ignorer *gitignore.GitIgnore
}

// loadIgnore 读取目录下的 .storeignore（如果有）
// 规则文件读不了不影响加载，只是降级成不忽略任何东西
func loadIgnore(dir string) *matcher {
	path := filepath.Join(dir, IgnoreFile)
	if _, err := os.Stat(path); err != nil {
		return &matcher{}
	}

	ig, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		slog.Warn("unreadable ignore file, keeping everything", "path", path, "err", err)
		return &matcher{}
	}
	return &matcher{ignorer: ig}
}

// Matches 判断目录内的某个文件名是否被规则排除
func (m *matcher) Matches(name string) bool {
	if m.ignorer == nil {
		return false
	}
	return m.ignorer.MatchesPath(name)
}
