package progress

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"simvault/pkg/report"
	"simvault/pkg/timing"
)

// 状态行刷新间隔，和 timing 的迭代进度保持同一个节奏
const statusInterval = 2 * time.Second

// OverrunError: 读到的字节数超过了打开时记录的总大小
// 说明文件在读取期间被外部进程改动了，继续读只会拿到不可信的数据，
// 调用链必须把它当作致命错误，任何批量操作都不允许降级跳过
type OverrunError struct {
	Path      string
	Processed int64
	Total     int64
}

func (e *OverrunError) Error() string {
	return fmt.Sprintf("%d is too many bytes read from %s (expected %d)", e.Processed, e.Path, e.Total)
}

// FileReader 包装一个打开的文件，按打开时捕获的总大小跟踪读取进度
// 大文件的流式解码挂在它上面，解码多少就记多少，不需要调用方自己算
// 单线程使用：一个 FileReader 被驱动到结束之前不会有别的操作插进来
type FileReader struct {
	f    *os.File
	r    *bufio.Reader
	sink report.Sink

	path        string
	processed   int64
	total       int64 // 打开时从文件元数据取一次，之后不再刷新
	startedAt   time.Time
	lastPrinted time.Time
}

// CompletionToken 是一次性的完成凭证
// 读取结束后由调用者兑换到 Timer 里，生成一条计时记录
// 不兑换不会崩溃，只是报告里少一条；重复兑换是无操作
type CompletionToken struct {
	path     string
	total    int64
	started  time.Time
	redeemed bool
}

// Redeem 把这次读取的耗时记入 Timer，至多生效一次
func (t *CompletionToken) Redeem(tm *timing.Timer) {
	if t.redeemed {
		return
	}
	t.redeemed = true
	elapsed := time.Since(t.started)
	tm.AddResult(elapsed, fmt.Sprintf("Reading %s (%d MB)... %s",
		t.path, t.total/1024/1024, timing.PrettyDuration(elapsed)))
}

// Open 打开文件并捕获总大小，返回读取器和完成凭证
// 凭证由调用方在读完之后兑换，这里不做任何自动兑换
func Open(path string, sink report.Sink) (*FileReader, *CompletionToken, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	now := time.Now()
	fr := &FileReader{
		f:           f,
		r:           bufio.NewReader(f),
		sink:        sink,
		path:        path,
		total:       info.Size(),
		startedAt:   now,
		lastPrinted: now,
	}
	tok := &CompletionToken{path: path, total: info.Size(), started: now}
	return fr, tok, nil
}

func (fr *FileReader) Read(p []byte) (int, error) {
	n, err := fr.r.Read(p)
	fr.processed += int64(n)
	if fr.processed > fr.total {
		// 不变量：处理字节数不得超过打开时的总大小
		return n, &OverrunError{Path: fr.path, Processed: fr.processed, Total: fr.total}
	}

	done := fr.processed == fr.total && n == 0
	if time.Since(fr.lastPrinted) >= statusInterval || done {
		fr.lastPrinted = time.Now()
		elapsed := timing.PrettyDuration(time.Since(fr.startedAt))
		if done {
			fr.sink.Line(fmt.Sprintf("Read %s (%d MB)... %s",
				fr.path, fr.total/1024/1024, elapsed))
		} else {
			fr.sink.Status(fmt.Sprintf("Reading %s: %d/%d MB... %s",
				fr.path, fr.processed/1024/1024, fr.total/1024/1024, elapsed))
		}
	}

	return n, err
}

func (fr *FileReader) Close() error {
	return fr.f.Close()
}
