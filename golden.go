package main

import (
	"fmt"
	"os"
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// maxDiffLines 限制打印的差异行数。
const maxDiffLines = 40

// compareGolden 比较导出结果与基准文件，不一致时返回包含行级差异的错误。
func compareGolden(got []byte, goldenPath string) error {
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		return fmt.Errorf("读取基准文件 %s 失败: %w", goldenPath, err)
	}
	if string(want) == string(got) {
		return nil
	}
	return fmt.Errorf("导出结果与基准 %s 不一致:\n%s", goldenPath, lineDiff(string(want), string(got)))
}

// lineDiff 以行为单位比较两段文本，输出 -/+ 前缀的差异行。
func lineDiff(want, got string) string {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(want, got)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var sb strings.Builder
	n := 0
	for _, df := range diffs {
		var prefix string
		switch df.Type {
		case dmp.DiffDelete:
			prefix = "- "
		case dmp.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, l := range strings.Split(strings.TrimSuffix(df.Text, "\n"), "\n") {
			if n == maxDiffLines {
				sb.WriteString("...\n")
				return sb.String()
			}
			sb.WriteString(prefix)
			sb.WriteString(l)
			sb.WriteByte('\n')
			n++
		}
	}
	return sb.String()
}
