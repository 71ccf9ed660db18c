package fonts

import "testing"

func TestLoadAcceptsPrefixes(t *testing.T) {
	for _, name := range []string{"go-regular", "builtin:go-regular", "embed:Go-Regular", ""} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) 返回空数据", name)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("builtin:comic"); err == nil {
		t.Fatalf("未知字体应返回错误")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 4 || names[0] != "go-bold" || names[3] != "go-regular" {
		t.Fatalf("内置字体列表错误: %v", names)
	}
}
