package pantry

// Requirement 食譜所需的一項食材，對應資料表中的一列
type Requirement struct {
	Recipe     string  `json:"recipe" yaml:"recipe"`
	Ingredient string  `json:"ingredient" yaml:"ingredient"`
	Quantity   float64 `json:"quantity" yaml:"quantity"`
	Unit       string  `json:"unit" yaml:"unit"`
	Favorite   bool    `json:"favorite" yaml:"favorite"`
}

// Step 食譜步驟，Number 從 1 開始
type Step struct {
	Recipe      string `json:"recipe" yaml:"recipe"`
	Number      int    `json:"number" yaml:"number"`
	Instruction string `json:"instruction" yaml:"instruction"`
}

// ShoppingItem 購物清單的一行
type ShoppingItem struct {
	Ingredient string  `json:"ingredient"`
	Unit       string  `json:"unit"`
	Total      float64 `json:"total"`
	Category   string  `json:"category"`
}

// CookableRecipe 可烹煮食譜的比對結果
type CookableRecipe struct {
	Recipe        string   `json:"recipe"`
	MatchCount    int      `json:"match_count"`
	RequiredCount int      `json:"required_count"`
	Missing       []string `json:"missing"`
}

// View 冰箱頁面的食材分組
type View struct {
	Basics     []string `json:"basics"`
	Fresh      []string `json:"fresh"`
	Candidates []string `json:"candidates"`
}
