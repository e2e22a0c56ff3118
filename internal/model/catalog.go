package model

const (
	CategoryPlant     = "plant"
	CategoryPet       = "pet"
	CategoryLighting  = "lighting"
	CategoryTheme     = "theme"
	CategoryFurniture = "furniture"
)

type ShopItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int    `json:"price"`
	Rarity    string `json:"rarity"`
	SortOrder int    `json:"sortOrder"`
}

// ExclusiveCategory reports whether a category models a single display slot:
// activating one item deactivates any other active item in the category.
func ExclusiveCategory(category string) bool {
	switch category {
	case CategoryPlant, CategoryPet, CategoryLighting:
		return true
	}
	return false
}

var ShopCatalog = []ShopItem{
	{ID: "plant_01", Name: "Small Cactus", Category: CategoryPlant, Price: 1, Rarity: "common", SortOrder: 1},
	{ID: "plant_02", Name: "Monstera", Category: CategoryPlant, Price: 2, Rarity: "common", SortOrder: 2},
	{ID: "plant_03", Name: "Cherry Bonsai", Category: CategoryPlant, Price: 5, Rarity: "rare", SortOrder: 3},
	{ID: "cat_01", Name: "Cheese Cat", Category: CategoryPet, Price: 3, Rarity: "common", SortOrder: 10},
	{ID: "cat_02", Name: "Black Cat", Category: CategoryPet, Price: 3, Rarity: "common", SortOrder: 11},
	{ID: "cat_03", Name: "Calico Cat", Category: CategoryPet, Price: 5, Rarity: "rare", SortOrder: 12},
	{ID: "light_01", Name: "Desk Lamp", Category: CategoryLighting, Price: 2, Rarity: "common", SortOrder: 20},
	{ID: "light_02", Name: "Fairy Lights", Category: CategoryLighting, Price: 5, Rarity: "rare", SortOrder: 21},
	{ID: "light_03", Name: "Neon Sign", Category: CategoryLighting, Price: 8, Rarity: "rare", SortOrder: 22},
	{ID: "theme_cozy", Name: "Cozy Room", Category: CategoryTheme, Price: 10, Rarity: "legendary", SortOrder: 30},
	{ID: "theme_nature", Name: "Forest Room", Category: CategoryTheme, Price: 10, Rarity: "legendary", SortOrder: 31},
	{ID: "theme_space", Name: "Space Room", Category: CategoryTheme, Price: 15, Rarity: "legendary", SortOrder: 32},
	{ID: "furniture_01", Name: "Bookshelf", Category: CategoryFurniture, Price: 4, Rarity: "common", SortOrder: 40},
	{ID: "furniture_02", Name: "Round Rug", Category: CategoryFurniture, Price: 3, Rarity: "common", SortOrder: 41},
	{ID: "furniture_03", Name: "Poster", Category: CategoryFurniture, Price: 2, Rarity: "common", SortOrder: 42},
}

var DefaultItemPositions = map[string][2]float64{
	"plant_01":     {0.78, 0.7},
	"plant_02":     {0.78, 0.7},
	"plant_03":     {0.78, 0.7},
	"cat_01":       {0.2, 0.18},
	"cat_02":       {0.2, 0.18},
	"cat_03":       {0.2, 0.18},
	"light_01":     {0.15, 0.55},
	"furniture_02": {0.5, 0.45},
}

func CatalogItem(itemID string) (ShopItem, bool) {
	for _, item := range ShopCatalog {
		if item.ID == itemID {
			return item, true
		}
	}
	return ShopItem{}, false
}
