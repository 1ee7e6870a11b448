package repository

// FilterOrder carries raw filter and order_by expressions from callers.
type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }

// ListItemQuery holds parameters for listing vocabulary items.
type ListItemQuery struct {
	FilterOrder
}
