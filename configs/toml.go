package configs

import (
	"github.com/BurntSushi/toml"

	"github.com/Lvzhenqian/library/errors"
)

// TOMLFile 从 toml 文件读取 T
type TOMLFile[T any] struct {
	Path string
}

func (f TOMLFile[T]) FilePath() string {
	return f.Path
}

func (f TOMLFile[T]) ReadConfig() (T, error) {
	var data T
	if _, err := toml.DecodeFile(f.Path, &data); err != nil {
		return data, errors.Wrapf(err, "decode %s", f.Path)
	}
	return data, nil
}
