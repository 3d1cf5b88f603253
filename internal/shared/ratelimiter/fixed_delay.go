package ratelimiter

import (
	"sync"
	"time"
)

// FixedDelay は呼び出しごとに一定の間隔を空けるリミッターです。
// NSEのようにリクエスト間ディレイを求める外部APIへの politeness 用です。
// 1つのインスタンスがcron発火とCLI実行で共有されるため、内部状態はロックで保護します。
type FixedDelay struct {
	interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

// NewFixedDelay は新しいFixedDelayを生成します。intervalが0以下の場合は待機しません。
func NewFixedDelay(interval time.Duration) *FixedDelay {
	return &FixedDelay{interval: interval}
}

// WaitIfNeeded は前回の呼び出しからinterval経過するまで待機します。
func (fd *FixedDelay) WaitIfNeeded() {
	fd.mu.Lock()
	defer fd.mu.Unlock()

	if fd.interval <= 0 {
		fd.last = time.Now()
		return
	}
	if !fd.last.IsZero() {
		if sleep := fd.interval - time.Since(fd.last); sleep > 0 {
			time.Sleep(sleep)
		}
	}
	fd.last = time.Now()
}
