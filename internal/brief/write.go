package brief

import (
	"fmt"
	"os"
	"strings"
)

// WriteFileAtomic 先写临时文件再 rename，避免读取方看到写了一半的晨报。
// 内容末尾保证恰好一个换行；目录不存在或不可写时直接返回错误。
func WriteFileAtomic(path, report string) error {
	content := strings.TrimRight(report, "\n") + "\n"
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write brief %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename brief %s: %w", path, err)
	}
	return nil
}
