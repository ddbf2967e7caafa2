package model

// CategoryData holds the systems of one category.
type CategoryData struct {
	Category Category
	Systems  Ordered[SystemRecord]
}

// Dataset is the aggregated input of an export, one entry per requested
// category in request order.
type Dataset struct {
	Categories []CategoryData
}

// Lookup returns the data for c.
func (d Dataset) Lookup(c Category) (CategoryData, bool) {
	for _, cd := range d.Categories {
		if cd.Category == c {
			return cd, true
		}
	}
	return CategoryData{}, false
}

// Names returns the category names in order.
func (d Dataset) Names() []string {
	out := make([]string, len(d.Categories))
	for i, cd := range d.Categories {
		out[i] = string(cd.Category)
	}
	return out
}
