package constant

// ProductCategories is the fixed set of storefront categories.
var ProductCategories = []string{
	"Electronics",
	"Fashion",
	"Home & Living",
	"Health & Beauty",
	"Food & Beverages",
	"Sports & Outdoors",
	"Books & Media",
	"Toys & Games",
	"Other",
}

func ValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}
