package models

// NewListDraft is the state of the create-list form.
type NewListDraft struct {
	Title string
	// Error holds the backend's title validation message, if any.
	Error string
}

// ListOptionsDraft is the state of the rename-list form.
type ListOptionsDraft struct {
	ID    int64
	Title string
}

// ItemDetailDraft is the state of the item-detail editor. Tags are edited as
// separate tokens and joined back into Item.Tag on submit.
type ItemDetailDraft struct {
	ID       int64
	ListID   int64
	Priority int
	Note     string
	Color    string
	Tags     []string
}
