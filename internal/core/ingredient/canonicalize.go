package ingredient

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// rule 關鍵字規則：任一關鍵字為子字串即命中
type rule struct {
	keywords  []string
	canonical string
}

// 規則順序即優先序，第一個命中者勝出
// 注意：採子字串比對，"zwiebelpulver" 也會對應到 Zwiebel
var rules = []rule{
	{[]string{"garlic", "knoblauch"}, "Knoblauch"},
	{[]string{"onion", "zwiebel", "schalotte"}, "Zwiebel"},
	{[]string{"salt", "salz"}, "Salz"},
	{[]string{"pepper", "pfeffer"}, "Pfeffer"},
	{[]string{"oil", "öl"}, "Öl"},
	{[]string{"ginger", "ingwer"}, "Ingwer"},
	{[]string{"sugar", "zucker"}, "Zucker"},
	{[]string{"flour", "mehl"}, "Mehl"},
	{[]string{"butter"}, "Butter"},
	{[]string{"cheese", "käse", "parmesan"}, "Käse"},
	{[]string{"egg", "eier"}, "Ei"},
	{[]string{"lemon", "zitrone"}, "Zitrone"},
	{[]string{"milk", "milch"}, "Milch"},
	{[]string{"water", "wasser"}, "Wasser"},
}

// 複數 → 單數
var singulars = map[string]string{
	"Eier":       "Ei",
	"Tomaten":    "Tomate",
	"Kartoffeln": "Kartoffel",
	"Karotten":   "Karotte",
	"Möhren":     "Karotte",
	"Äpfel":      "Apfel",
	"Paprikas":   "Paprika",
	"Gurken":     "Gurke",
	"Dosen":      "Dose",
	"Packungen":  "Packung",
}

// Canonicalize 將原始食材名稱轉為標準德文顯示名稱
// 永不失敗：無法辨識的名稱會盡力轉換而不是丟棄
func Canonicalize(name string) string {
	search := strings.ToLower(strings.TrimSpace(name))

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(search, kw) {
				return r.canonical
			}
		}
	}

	capitalized := capitalize(strings.TrimSpace(name))
	if singular, ok := singulars[capitalized]; ok {
		return singular
	}
	return capitalized
}

// CanonicalizeValue 處理來源不明的值（例如 JSON 解碼結果）
// 非字串直接字串化後原樣回傳，不套用規則；nil 回傳空字串
// 陣列與物件以 JSON 文字表示
func CanonicalizeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return Canonicalize(val)
	case []any, map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// capitalize 首字大寫，其餘小寫
func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
