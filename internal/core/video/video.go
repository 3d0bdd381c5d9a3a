package video

import "strings"

// VideoID 從 YouTube 連結取出影片 ID
// 支援 shorts/<id>、watch?v=<id> 與 youtu.be/<id> 三種格式
func VideoID(url string) (string, bool) {
	var id string
	switch {
	case strings.Contains(url, "shorts/"):
		_, rest, _ := strings.Cut(url, "shorts/")
		id, _, _ = strings.Cut(rest, "?")
	case strings.Contains(url, "v="):
		_, rest, _ := strings.Cut(url, "v=")
		id, _, _ = strings.Cut(rest, "&")
	case strings.Contains(url, "youtu.be/"):
		_, rest, _ := strings.Cut(url, "youtu.be/")
		id, _, _ = strings.Cut(rest, "?")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	return id, true
}
