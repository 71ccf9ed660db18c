package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将画面快照输出为 JSON，便于调试或外部导出工具读取。
func WriteDebugJSON(snap *Snapshot, path string) error {
	if snap == nil {
		return nil
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
