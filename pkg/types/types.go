// pkg/types/types.go
package types

import (
	"path/filepath"
	"strings"
)

// Format 表示对象在磁盘上的编码格式
// 格式完全由文件名后缀决定；内存中的对象不携带格式标记，
// 只在 I/O 边界根据路径推断
type Format string

const (
	FormatJSON   Format = "json" // 结构化文本 (缩进 JSON)，适合小对象和人工检查
	FormatBinary Format = "bin"  // 紧凑二进制 (CBOR)，适合大快照，读取时走流式进度
)

func (f Format) String() string { return string(f) }

// Suffix 返回格式对应的文件名后缀 (含点)
func (f Format) Suffix() string { return "." + string(f) }

// FormatForPath 根据后缀推断格式
// 只认两种后缀；其他后缀返回 false，由调用方决定是否当作配置错误
func FormatForPath(path string) (Format, bool) {
	switch {
	case strings.HasSuffix(path, FormatJSON.Suffix()):
		return FormatJSON, true
	case strings.HasSuffix(path, FormatBinary.Suffix()):
		return FormatBinary, true
	}
	return "", false
}

// Key 是目录存储里对象的键：去掉扩展名的文件名 (stem)
// 这是一个值对象，同一目录内约定 stem 互不重复
type Key string

func (k Key) String() string { return string(k) }

// StemOf 去掉文件名的扩展名，得到对象的 Key
// "model.bin" -> "model"；没有扩展名时原样返回
func StemOf(filename string) Key {
	return Key(strings.TrimSuffix(filename, filepath.Ext(filename)))
}
