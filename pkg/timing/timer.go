package timing

import (
	"fmt"
	"time"

	"simvault/pkg/report"
)

// 状态行刷新间隔：低于这个间隔的进度更新直接丢弃，避免刷屏
const statusInterval = 2 * time.Second

// Result 是一条命名耗时记录
type Result struct {
	Elapsed time.Duration
	Line    string
}

// Timer 汇总一次操作内的命名耗时记录和迭代进度
// 它以唯一的 *Timer 指针穿过每个做 I/O 的调用，
// 嵌套操作（比如批量加载多个对象）的子计时都归到同一份报告里
// 单线程模型：同一时刻只有一个调用在写它
type Timer struct {
	name    string
	sink    report.Sink
	started time.Time
	results []Result

	// 当前迭代计数器（同一时刻只有一个在跑）
	iterName    string
	iterTotal   int
	iterDone    int
	lastPrinted time.Time
}

func NewTimer(name string, sink report.Sink) *Timer {
	return &Timer{
		name:    name,
		sink:    sink,
		started: time.Now(),
	}
}

// AddResult 追加一条命名耗时记录，保持插入顺序
func (t *Timer) AddResult(elapsed time.Duration, line string) {
	t.results = append(t.results, Result{Elapsed: elapsed, Line: line})
}

// Results 返回已记录条目的副本，供测试和上层检查
func (t *Timer) Results() []Result {
	out := make([]Result, len(t.results))
	copy(out, t.results)
	return out
}

// StartIter 开始一个已知步数的迭代计数器
func (t *Timer) StartIter(name string, total int) {
	t.iterName = name
	t.iterTotal = total
	t.iterDone = 0
	t.lastPrinted = time.Time{}
}

// NextIter 前进一步
// 只有距上次输出超过刷新间隔、或者走到最后一步时才真正打印
func (t *Timer) NextIter() {
	t.iterDone++
	if time.Since(t.lastPrinted) >= statusInterval || t.iterDone == t.iterTotal {
		t.lastPrinted = time.Now()
		t.sink.Status(fmt.Sprintf("%s: %d/%d", t.iterName, t.iterDone, t.iterTotal))
	}
}

// Done 结束计时并打印汇总报告：总耗时一行，随后每条记录一行
func (t *Timer) Done() {
	t.sink.Line(fmt.Sprintf("%s... %s", t.name, PrettyDuration(time.Since(t.started))))
	for _, r := range t.results {
		t.sink.Line("  - " + r.Line)
	}
}

// PrettyDuration 统一的耗时展示格式
func PrettyDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
