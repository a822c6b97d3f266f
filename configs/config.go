// Package configs keeps a current configuration value and fans every reload
// out to the registered modules.
package configs

import (
	"io"
	"sync"
)

// Config 是配置来源，Reload 阻塞直到来源关闭
type Config[T any] interface {
	Reload(chan<- T)
}

type Module[T any] interface {
	Name() string
	Watch(<-chan T)
}

type ConfigManager[T any] struct {
	cfg    Config[T]
	update chan T
	done   chan struct{}
	data   *T

	mux     *sync.RWMutex
	modules map[string]chan T
}

func NewManager[T any](cfg Config[T]) *ConfigManager[T] {
	return newManager(cfg, nil)
}

func newManager[T any](cfg Config[T], initial *T) *ConfigManager[T] {
	manager := &ConfigManager[T]{
		cfg:     cfg,
		update:  make(chan T),
		done:    make(chan struct{}),
		data:    initial,
		mux:     new(sync.RWMutex),
		modules: make(map[string]chan T),
	}
	go func() {
		cfg.Reload(manager.update)
		close(manager.update)
	}()
	go manager.startNotify()

	return manager
}

// Current 返回最近一次加载的配置，ok 为 false 表示还没有加载过
func (c *ConfigManager[T]) Current() (data T, ok bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	if c.data == nil {
		return data, false
	}
	return *c.data, true
}

// AddModule 注册模块，已有配置时模块会先收到当前值。同名模块会被替换
func (c *ConfigManager[T]) AddModule(m Module[T]) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if old, ok := c.modules[m.Name()]; ok {
		close(old)
	}
	// 新增一个 channel用来等待更新通知
	ch := make(chan T, 1)
	if c.data != nil {
		ch <- *c.data
	}
	c.modules[m.Name()] = ch
	// 开启一个协程来接收这个通知
	go m.Watch(ch)
}

func (c *ConfigManager[T]) RemoveModule(name string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	channel, ok := c.modules[name]
	if ok {
		close(channel)
		delete(c.modules, name)
	}
}

// Close 关闭配置来源并等待通知协程退出，所有模块的 channel 都会被关闭
func (c *ConfigManager[T]) Close() error {
	var err error
	if closer, ok := c.cfg.(io.Closer); ok {
		err = closer.Close()
	}
	<-c.done
	return err
}

func (c *ConfigManager[T]) startNotify() {
	defer close(c.done)
	for newData := range c.update {
		newData := newData
		c.mux.Lock()
		c.data = &newData
		for _, module := range c.modules {
			// 模块处理慢时只保留最新的配置
			select {
			case <-module:
			default:
			}
			module <- newData
		}
		c.mux.Unlock()
	}

	c.mux.Lock()
	defer c.mux.Unlock()
	for name, module := range c.modules {
		close(module)
		delete(c.modules, name)
	}
}
