package pantry

import "strings"

// DefaultBasicNames 預設常備食材
var DefaultBasicNames = []string{"Salz", "Pfeffer", "Öl", "Butter", "Milch", "Zucker", "Mehl", "Wasser"}

// Basics 常備食材集合，保留加入順序
// 值語意：Add 與 Remove 都回傳新集合，不修改原集合
type Basics struct {
	names []string
}

// NewBasics 建立集合，忽略空白與重複名稱
func NewBasics(names ...string) Basics {
	var b Basics
	for _, n := range names {
		b = b.Add(n)
	}
	return b
}

// DefaultBasics 回傳預設常備食材
func DefaultBasics() Basics {
	return NewBasics(DefaultBasicNames...)
}

// Add 加入名稱，已存在時原樣回傳
func (b Basics) Add(name string) Basics {
	name = strings.TrimSpace(name)
	if name == "" || b.Contains(name) {
		return b
	}
	names := make([]string, len(b.names), len(b.names)+1)
	copy(names, b.names)
	return Basics{names: append(names, name)}
}

// Remove 移除名稱，不存在時原樣回傳
func (b Basics) Remove(name string) Basics {
	name = strings.TrimSpace(name)
	if !b.Contains(name) {
		return b
	}
	names := make([]string, 0, len(b.names)-1)
	for _, n := range b.names {
		if n != name {
			names = append(names, n)
		}
	}
	return Basics{names: names}
}

// Contains 是否包含
func (b Basics) Contains(name string) bool {
	for _, n := range b.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names 回傳名稱副本
func (b Basics) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Len 集合大小
func (b Basics) Len() int {
	return len(b.names)
}
