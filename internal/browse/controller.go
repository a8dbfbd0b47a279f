package browse

import (
	"context"
	"sync"
	"time"

	"app/internal/catalog"
	"app/internal/filter"
)

// ViewMode は一覧の表示形式。クエリには載せない。
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

const DefaultDebounce = 300 * time.Millisecond

// Snapshot は読み取り専用のビュー状態。
// 変更は必ず Controller の操作を通す。
type Snapshot struct {
	Criteria filter.Criteria
	ViewMode ViewMode

	// 直近の確定結果。エラー時も前の結果を保持する。
	Result *catalog.Result
	// 直近のクエリの失敗。成功すると nil に戻る。
	// 空の成功結果（0件）とは区別される。
	Err error

	Loading     bool // クエリが実行中
	IsFiltering bool
	IsSearching bool

	HasActiveFilters  bool
	ActiveFilterCount int
}

// Controller は FilterCriteria の唯一の所有者。
// デバウンス・クエリ発行・鮮度ガードをまとめる。
type Controller struct {
	querier catalog.Querier
	deb     *filter.Debouncer[filter.Criteria]

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	criteria filter.Criteria
	viewMode ViewMode
	result   *catalog.Result
	err      error

	isFiltering bool
	isSearching bool

	issued  uint64 // 発行した最新のリクエスト番号
	applied uint64 // 反映済みの最大番号

	closed  bool
	updates chan struct{}
}

// DI。initial でデフォルト条件を上書きし、最初のクエリをすぐ発行する。
func NewController(querier catalog.Querier, initial filter.Patch, delay time.Duration) *Controller {
	if delay < 0 {
		delay = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		querier:  querier,
		ctx:      ctx,
		cancel:   cancel,
		criteria: filter.Default().Apply(initial).Normalize(),
		viewMode: ViewModeGrid,
		updates:  make(chan struct{}, 1),
	}
	c.deb = filter.NewDebouncer(delay, c.issue)

	// 初期表示のロード
	c.issue(c.criteria)
	return c
}

// Updates は状態が変わるたびに通知されるチャネル。
// 溜まっていない通知は1つに潰される。
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// SetFilters は部分的な条件変更を受け付ける。
// 絞り込みフィールドの変更は page を1に戻し、デバウンス後にクエリする。
func (c *Controller) SetFilters(p filter.Patch) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.criteria = c.criteria.Apply(p)
	if p.HasSearch() {
		c.isSearching = true
	}
	if p.Constraining() || p.Sort != nil {
		c.isFiltering = true
	}
	crit := c.criteria
	c.mu.Unlock()

	c.deb.Set(crit)
	c.notify()
}

// HandlePageChange はページ移動。絞り込みではないので
// page のリセットも filtering フラグも起こさない。
func (c *Controller) HandlePageChange(page int) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.criteria = c.criteria.Apply(filter.Patch{Page: &page})
	crit := c.criteria
	c.mu.Unlock()

	c.deb.Set(crit)
	c.notify()
}

// HandleSearch は検索語の変更（page は1に戻る）
func (c *Controller) HandleSearch(term string) {
	page := filter.DefaultPage
	c.SetFilters(filter.Patch{Search: &term, Page: &page})
}

// ClearAllFilters は limit 以外の条件をデフォルトへ戻す。
// 単発の操作なのでデバウンスを待たずにすぐクエリする
// （鮮度ガードは通常のクエリと共通）。
func (c *Controller) ClearAllFilters() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	cleared := filter.Default()
	cleared.Limit = c.criteria.Limit
	c.criteria = cleared
	c.isFiltering = true
	crit := c.criteria
	c.mu.Unlock()

	c.deb.Cancel()
	c.issue(crit)
	c.notify()
}

// SetViewMode は表示形式の切り替えのみ。クエリは発行しない。
func (c *Controller) SetViewMode(mode ViewMode) {
	if mode != ViewModeGrid && mode != ViewModeList {
		return
	}

	c.mu.Lock()
	if c.closed || c.viewMode == mode {
		c.mu.Unlock()
		return
	}
	c.viewMode = mode
	c.mu.Unlock()

	c.notify()
}

// Refresh は現在の条件で即時に再クエリする（エラー後の再試行用）
func (c *Controller) Refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	crit := c.criteria
	c.mu.Unlock()

	c.deb.Cancel()
	c.issue(crit)
}

// Snapshot は現在の状態のコピーを返す
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Criteria:          c.criteria.Clone(),
		ViewMode:          c.viewMode,
		Err:               c.err,
		Loading:           c.issued > c.applied,
		IsFiltering:       c.isFiltering,
		IsSearching:       c.isSearching,
		HasActiveFilters:  c.criteria.HasActiveFilters(),
		ActiveFilterCount: c.criteria.ActiveFilterCount(),
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	return s
}

// Close は破棄。予約中のデバウンスを止め、飛行中の応答は捨てられる。
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.deb.Stop()
	c.cancel()
}

// issue は確定した条件でコラボレーターへ問い合わせる。
// 応答は発行番号で比較し、より新しい応答が先に反映されていたら捨てる
// （last-request-wins）。
func (c *Controller) issue(crit filter.Criteria) {
	c.mu.Lock()
	// デバウンス発火とほぼ同時に条件が変わっていたら、この発行は
	// 追い越されている。新しい変更が自分の発行を予約済みなので任せる。
	if c.closed || !crit.Equal(c.criteria) {
		c.mu.Unlock()
		return
	}
	c.issued++
	seq := c.issued
	c.mu.Unlock()
	c.notify()

	go func() {
		res, err := c.querier.Search(c.ctx, crit)

		c.mu.Lock()
		if c.closed || seq <= c.applied {
			c.mu.Unlock()
			return
		}
		c.applied = seq

		if err != nil {
			c.err = err
			// 前回の結果は画面用に保持したまま
		} else {
			res = res.Normalize()
			c.err = nil
			c.result = &res
		}

		// これが最新のリクエストで、次の変更も控えていなければ
		// 遷移中フラグを下ろす
		if seq == c.issued && !c.deb.Pending() {
			c.isFiltering = false
			c.isSearching = false
		}
		c.mu.Unlock()

		c.notify()
	}()
}

// notify は通知チャネルへノンブロッキングで送る
func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
