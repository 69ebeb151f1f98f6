// Package menu holds the restaurant's fixed catalog. It is read-only for the
// lifetime of the process.
package menu

import "github.com/junaidrashid-git/biryani-house/models"

var items = []models.MenuItem{
	{
		ID:          1,
		Name:        "Biriyanis",
		Image:       "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?w=600",
		Description: "Aromatic rice with tender meat and authentic spices",
		Price:       250,
	},
	{
		ID:          2,
		Name:        "Thalis",
		Image:       "https://images.unsplash.com/photo-1546833999-b9f581a1996d?w=600",
		Description: "Complete meal with rice, curries, and sides",
		Price:       180,
	},
	{
		ID:          3,
		Name:        "Mandis",
		Image:       "https://images.unsplash.com/photo-1633945274605-562d9e88008c?w=600",
		Description: "Traditional Arabian rice dish with roasted meat",
		Price:       300,
	},
}

// Items returns a copy of the catalog in display order.
func Items() []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	copy(out, items)
	return out
}

// Lookup finds an item by id.
func Lookup(id int) (models.MenuItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}
