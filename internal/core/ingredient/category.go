package ingredient

import "strings"

// 購物清單分區
const (
	CategoryProduce   = "Obst & Gemüse"
	CategoryDairy     = "Milchprodukte"
	CategoryMeat      = "Fleisch & Fisch"
	CategoryBakery    = "Backwaren"
	CategoryPantry    = "Vorrat"
	CategorySpices    = "Gewürze"
	CategoryBeverages = "Getränke"
	CategoryFrozen    = "Tiefkühl"
	CategoryOther     = "Sonstiges"
)

// Category 回傳食材所屬的購物分區
// 先完全比對，再依序做子字串比對，找不到時回傳 Sonstiges
func Category(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return CategoryOther
	}

	if cat, ok := exactCategories[key]; ok {
		return cat
	}

	for _, entry := range substringCategories {
		if strings.Contains(key, entry.keyword) {
			return entry.category
		}
	}

	return CategoryOther
}

var exactCategories = map[string]string{
	"knoblauch": CategoryProduce,
	"zwiebel":   CategoryProduce,
	"ingwer":    CategoryProduce,
	"zitrone":   CategoryProduce,
	"tomate":    CategoryProduce,
	"kartoffel": CategoryProduce,
	"karotte":   CategoryProduce,
	"apfel":     CategoryProduce,
	"paprika":   CategoryProduce,
	"gurke":     CategoryProduce,
	"zucchini":  CategoryProduce,
	"spinat":    CategoryProduce,
	"lauch":     CategoryProduce,

	"butter":  CategoryDairy,
	"milch":   CategoryDairy,
	"käse":    CategoryDairy,
	"ei":      CategoryDairy,
	"sahne":   CategoryDairy,
	"quark":   CategoryDairy,
	"joghurt": CategoryDairy,

	"salz":    CategorySpices,
	"pfeffer": CategorySpices,

	"zucker": CategoryPantry,
	"mehl":   CategoryPantry,
	"öl":     CategoryPantry,
	"reis":   CategoryPantry,
	"nudeln": CategoryPantry,
	"dose":   CategoryPantry,

	"wasser": CategoryBeverages,
	"wein":   CategoryBeverages,
}

// 較長、較具體的關鍵字放前面
var substringCategories = []struct {
	keyword  string
	category string
}{
	{"tiefkühl", CategoryFrozen},
	{"hähnchen", CategoryMeat},
	{"hackfleisch", CategoryMeat},
	{"schinken", CategoryMeat},
	{"speck", CategoryMeat},
	{"lachs", CategoryMeat},
	{"fisch", CategoryMeat},
	{"fleisch", CategoryMeat},
	{"wurst", CategoryMeat},
	{"brot", CategoryBakery},
	{"brötchen", CategoryBakery},
	{"joghurt", CategoryDairy},
	{"sahne", CategoryDairy},
	{"pulver", CategorySpices},
	{"gewürz", CategorySpices},
	{"kräuter", CategorySpices},
	{"petersilie", CategoryProduce},
	{"basilikum", CategoryProduce},
	{"salat", CategoryProduce},
	{"pilz", CategoryProduce},
	{"nudel", CategoryPantry},
	{"reis", CategoryPantry},
	{"brühe", CategoryPantry},
	{"essig", CategoryPantry},
	{"saft", CategoryBeverages},
}
