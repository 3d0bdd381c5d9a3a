package pantry

import "strings"

// FavoriteChange 收藏狀態變更，交給儲存層寫回
type FavoriteChange struct {
	Recipe   string `json:"recipe"`
	Favorite bool   `json:"favorite"`
}

// ToggleFavorite 純粹的布林翻轉
func ToggleFavorite(recipe string, current bool) FavoriteChange {
	return FavoriteChange{Recipe: recipe, Favorite: !current}
}

// ParseTruthy 解析試算表中的收藏欄位
// 接受 true、x、ja、1（不分大小寫），其餘皆為 false
func ParseTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "x", "ja", "1":
		return true
	default:
		return false
	}
}
