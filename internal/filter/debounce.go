package filter

import (
	"sync"
	"time"
)

// Debouncer は値の変化が delay の間止まってから fn を1回だけ呼ぶ。
// Set のたびにタイマーを張り直すので、連続した変更は最後の値に畳まれる。
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	gen     uint64 // 発火直前に割り込んだ Set/Cancel を見分ける
	stopped bool
}

// DI
func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		fn:    fn,
	}
}

// Set は最新の値を受け取り、delay 後の発火を予約する。
// 進行中の予約があればキャンセルして張り直す。
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Stop済み、またはタイマー発火とほぼ同時に新しい Set が
		// 入っていた場合は古い値なので捨てる
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn(v)
	})
}

// Cancel は予約中の発火だけを取り消す（以後の Set は有効）
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending は発火待ちの予約があるか
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop は破棄。以後は一切発火しない。
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
