package domain

// PageTree is a page plus its ordered children. Children is never nil on a
// built tree so leaves encode as an empty JSON array.
type PageTree struct {
	*Page
	Children []*PageTree `json:"children"`
}

// GroupMenu pairs a group with the forest of its root pages.
type GroupMenu struct {
	PageGroup
	Menu []*PageTree `json:"menu"`
}

// SiteResponse is the assembled menu for one site.
type SiteResponse struct {
	Site
	PageGroups []GroupMenu `json:"pageGroups"`
}
