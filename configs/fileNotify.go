package configs

import (
	"sync"

	"gopkg.in/fsnotify.v1"

	"github.com/Lvzhenqian/library/errors"
)

type Read[T any] interface {
	FilePath() string
	ReadConfig() (T, error)
}

type FileOption func(*fileOptions)

type fileOptions struct {
	onError func(error)
}

// WithErrorHandler 设置读取或监听出错时的回调，默认忽略错误并保留旧配置
func WithErrorHandler(fn func(error)) FileOption {
	return func(o *fileOptions) {
		o.onError = fn
	}
}

type fileManager[T any] struct {
	file    Read[T]
	watcher *fsnotify.Watcher
	onError func(error)
	once    sync.Once
}

// NewFileManager 读取一次配置文件，之后在文件被写入时重新加载
func NewFileManager[T any](conf Read[T], opts ...FileOption) (*ConfigManager[T], error) {
	options := &fileOptions{onError: func(error) {}}
	for _, fn := range opts {
		fn(options)
	}

	initial, readErr := conf.ReadConfig()
	if readErr != nil {
		return nil, readErr
	}

	watcher, fileWatchErr := fsnotify.NewWatcher()
	if fileWatchErr != nil {
		return nil, fileWatchErr
	}
	if addErr := watcher.Add(conf.FilePath()); addErr != nil {
		watcher.Close()
		return nil, addErr
	}

	manager := newManager[T](&fileManager[T]{
		file:    conf,
		watcher: watcher,
		onError: options.onError,
	}, &initial)
	return manager, nil
}

func (f *fileManager[T]) Close() error {
	var err error
	f.once.Do(func() {
		err = f.watcher.Close()
	})
	return err
}

func (f *fileManager[T]) Reload(update chan<- T) {
	defer f.Close()

	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			data, readErr := f.file.ReadConfig()
			if readErr != nil {
				f.onError(readErr)
				continue
			}
			update <- data
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.onError(errors.Wrap(err))
		}
	}
}
