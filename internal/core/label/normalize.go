package label

import (
	"regexp"
	"strings"
)

var separatorRun = regexp.MustCompile(`[;\n]+`)

// Normalize 將使用者輸入的成分文字整理成以逗號分隔的單行字串。
// 分號與換行一律改為 ", "，連續空白壓成一格並去除頭尾空白。
// 結果為空字串時代表沒有可分析的內容。
func Normalize(raw string) string {
	s := separatorRun.ReplaceAllString(raw, ", ")
	return strings.Join(strings.Fields(s), " ")
}
