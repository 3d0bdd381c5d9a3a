package pantry

import (
	"math"
	"strconv"
	"strings"
)

// Quantity 寬鬆解析的數量
// JSON 中的數字、數字字串、德文小數逗號、分數或 null 都接受，無法解析時為 0
type Quantity float64

// UnmarshalJSON 永不回傳錯誤，解析失敗一律視為 0
func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*q = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	*q = Quantity(ParseQuantity(raw))
	return nil
}

// Float64 回傳 float64 值
func (q Quantity) Float64() float64 {
	return sanitize(float64(q))
}

// String 以最短形式輸出，整數不帶小數點
func (q Quantity) String() string {
	return FormatQuantity(float64(q))
}

// ParseQuantity 將任意文字轉為非負數量，無法解析時回傳 0
func ParseQuantity(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
		return sanitize(v)
	}

	// 帶分數，例如 "1 1/2"
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		if v, ok := parseFraction(fields[0]); ok {
			return sanitize(v)
		}
	case 2:
		whole, err := strconv.ParseFloat(fields[0], 64)
		frac, ok := parseFraction(fields[1])
		if err == nil && ok {
			return sanitize(whole + frac)
		}
	}

	return 0
}

// FormatQuantity 輸出數量，"2.0" 顯示為 "2"
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(sanitize(v), 'f', -1, 64)
}

func parseFraction(s string) (float64, bool) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// sanitize NaN、無限大與負數都視為 0
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
