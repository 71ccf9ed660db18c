package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未指定字体时使用的内置字体。
const Default = "go-regular"

var builtin = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
	"go-italic":  goitalic.TTF,
	"go-mono":    gomono.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:go-bold"、"embed:go-bold" 或直接 "go-bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "builtin:")
	key = strings.TrimPrefix(key, "embed:")
	if key == "" {
		key = Default
	}
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可用字体 %s", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 返回全部内置字体名，按字母排序。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for k := range builtin {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
