package report

import (
	"fmt"
	"io"
	"strings"
)

// Sink 是进程级控制台输出的注入点
// 生产环境写 stdout；测试里注入 Capture，这样进度输出也能被断言
type Sink interface {
	// Line 输出完整的一行（会先清掉残留的状态行）
	Line(s string)
	// Status 原地重写当前状态行，不换行
	// 连续多次 Status 互相覆盖，只有最后一条留在屏幕上
	Status(s string)
}

// Console 把输出写到一个 io.Writer（通常是 os.Stdout）
// 状态行用 \r 回到行首覆盖，不依赖终端控制序列
type Console struct {
	w         io.Writer
	statusLen int // 上一条状态行的宽度，用于空格覆盖清除
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// clearStatus 擦掉残留的状态行
func (c *Console) clearStatus() {
	if c.statusLen == 0 {
		return
	}
	fmt.Fprintf(c.w, "\r%s\r", strings.Repeat(" ", c.statusLen))
	c.statusLen = 0
}

func (c *Console) Line(s string) {
	c.clearStatus()
	fmt.Fprintln(c.w, s)
}

func (c *Console) Status(s string) {
	// 新状态比旧的短时，先整行清掉，避免尾巴残留
	if len(s) < c.statusLen {
		c.clearStatus()
	}
	fmt.Fprintf(c.w, "\r%s", s)
	c.statusLen = len(s)
}

// Capture 记录所有输出，供测试断言
type Capture struct {
	Lines    []string
	Statuses []string
}

func (c *Capture) Line(s string)   { c.Lines = append(c.Lines, s) }
func (c *Capture) Status(s string) { c.Statuses = append(c.Statuses, s) }

// LastStatus 返回最近一条状态，没有时返回空串
func (c *Capture) LastStatus() string {
	if len(c.Statuses) == 0 {
		return ""
	}
	return c.Statuses[len(c.Statuses)-1]
}
