package models

import "sort"

// CategoryClass is the sign class of a category: income adds to a period's
// net total, expense subtracts from it.
type CategoryClass string

const (
	CategoryClassIncome  CategoryClass = "income"
	CategoryClassExpense CategoryClass = "expense"
)

// CategoryID identifies an entry of the static category table.
type CategoryID string

const (
	CategoryIncome    CategoryID = "income"
	CategoryBills     CategoryID = "bills"
	CategoryTaxes     CategoryID = "taxes"
	CategoryLeisure   CategoryID = "leisure"
	CategoryTransport CategoryID = "transport"
	CategoryFuel      CategoryID = "fuel"
	CategoryMortgage  CategoryID = "mortgage"
	CategoryInsurance CategoryID = "insurance"
)

// Category is a read-only entry of the category table.
type Category struct {
	ID    CategoryID    `json:"id"`
	Name  string        `json:"name"`
	Icon  string        `json:"icon"`
	Color string        `json:"color"`
	Class CategoryClass `json:"class"`
}

// categories is closed: sign-class correctness depends on nobody adding
// entries at runtime. Exactly one entry is income class.
var categories = []Category{
	{ID: CategoryIncome, Name: "Income", Icon: "wallet", Color: "#10B981", Class: CategoryClassIncome},
	{ID: CategoryBills, Name: "Bills", Icon: "file-text", Color: "#3B82F6", Class: CategoryClassExpense},
	{ID: CategoryTaxes, Name: "Taxes", Icon: "landmark", Color: "#EF4444", Class: CategoryClassExpense},
	{ID: CategoryLeisure, Name: "Leisure", Icon: "popcorn", Color: "#8B5CF6", Class: CategoryClassExpense},
	{ID: CategoryTransport, Name: "Public transport", Icon: "train", Color: "#0EA5E9", Class: CategoryClassExpense},
	{ID: CategoryFuel, Name: "Fuel", Icon: "fuel", Color: "#F97316", Class: CategoryClassExpense},
	{ID: CategoryMortgage, Name: "Mortgage", Icon: "home", Color: "#6366F1", Class: CategoryClassExpense},
	{ID: CategoryInsurance, Name: "Insurance", Icon: "shield", Color: "#14B8A6", Class: CategoryClassExpense},
}

var categoryIndex = func() map[CategoryID]int {
	idx := make(map[CategoryID]int, len(categories))
	for i, c := range categories {
		idx[c.ID] = i
	}
	return idx
}()

// Categories returns a copy of the category table in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory returns the table entry for id.
func LookupCategory(id CategoryID) (Category, bool) {
	i, ok := categoryIndex[id]
	if !ok {
		return Category{}, false
	}
	return categories[i], true
}

// CategoryFor returns the table entry for id, or a synthesized expense
// category for ids that are not in the table (legacy or corrupted rows).
func CategoryFor(id CategoryID) Category {
	if c, ok := LookupCategory(id); ok {
		return c
	}
	return Category{ID: id, Name: string(id), Class: CategoryClassExpense}
}

// Valid reports whether id is in the table.
func (id CategoryID) Valid() bool {
	_, ok := categoryIndex[id]
	return ok
}

// Class returns the sign class of id. Unknown ids are expense class.
func (id CategoryID) Class() CategoryClass {
	return CategoryFor(id).Class
}

// IsIncome reports whether id belongs to the income sign class.
func (id CategoryID) IsIncome() bool {
	return id.Class() == CategoryClassIncome
}

// SortCategoryIDs orders ids by their position in the table; unknown ids go
// last in lexical order.
func SortCategoryIDs(ids []CategoryID) {
	sort.SliceStable(ids, func(i, j int) bool {
		pi, iok := categoryIndex[ids[i]]
		pj, jok := categoryIndex[ids[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return ids[i] < ids[j]
		}
	})
}
