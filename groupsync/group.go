// Package groupsync runs functions on an ants pool and collects their return
// values in submission order.
package groupsync

import (
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

type Options func(group *Option)

type Option struct {
	limit        int
	expiry       time.Duration
	nonblocking  bool
	panicHandler func(interface{})
}

type Group[T any] struct {
	mux   sync.Mutex
	cells []*T

	wg   *sync.WaitGroup
	pool *ants.Pool
}

func NewGroup[T any](opt ...Options) (*Group[T], error) {
	option := &Option{
		limit:  10,
		expiry: ants.DefaultCleanIntervalTime,
	}
	for _, fn := range opt {
		fn(option)
	}

	antsOptions := []ants.Option{
		ants.WithPreAlloc(true),
		ants.WithExpiryDuration(option.expiry),
		ants.WithNonblocking(option.nonblocking),
	}
	if option.panicHandler != nil {
		antsOptions = append(antsOptions, ants.WithPanicHandler(option.panicHandler))
	}
	pool, err := ants.NewPool(option.limit, antsOptions...)
	if err != nil {
		return nil, err
	}

	return &Group[T]{
		wg:   new(sync.WaitGroup),
		pool: pool,
	}, nil
}

// Go 提交一个任务，返回值按提交顺序保存。
// 非阻塞模式下池满时返回 ants.ErrPoolOverload
func (g *Group[T]) Go(fn func() T) error {
	cell := new(T)
	g.wg.Add(1)
	err := g.pool.Submit(func() {
		defer g.wg.Done()
		*cell = fn()
	})
	if err != nil {
		g.wg.Done()
		return err
	}

	g.mux.Lock()
	g.cells = append(g.cells, cell)
	g.mux.Unlock()
	return nil
}

// Running 当前正在执行的任务数
func (g *Group[T]) Running() int {
	return g.pool.Running()
}

// Wait 等待所有任务结束并释放协程池，之后不能再调用 Go
func (g *Group[T]) Wait() []T {
	defer g.pool.Release()
	g.wg.Wait()

	g.mux.Lock()
	defer g.mux.Unlock()
	results := make([]T, len(g.cells))
	for i, cell := range g.cells {
		results[i] = *cell
	}
	return results
}

func WithLimit(limit int) Options {
	return func(opt *Option) {
		opt.limit = limit
	}
}

// WithExpiry 空闲 worker 的回收周期
func WithExpiry(expiry time.Duration) Options {
	return func(opt *Option) {
		opt.expiry = expiry
	}
}

func WithNonblocking(nonblocking bool) Options {
	return func(opt *Option) {
		opt.nonblocking = nonblocking
	}
}

// WithPanicHandler 任务 panic 时调用，该任务的返回值保持零值
func WithPanicHandler(handler func(interface{})) Options {
	return func(opt *Option) {
		opt.panicHandler = handler
	}
}
