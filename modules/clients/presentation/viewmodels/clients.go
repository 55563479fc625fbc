package viewmodels

type ClientListItem struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Company     string
	Status      string
	StatusLabel string
	CreatedAt   string
}

type ClientsListPageProps struct {
	Title      string
	Items      []*ClientListItem
	Total      int
	Query      string
	Search     string
	Status     string
	SortField  string
	SortDesc   bool
	State      string
	FormOpen   bool
	StatusOpts []*StatusOption
}

type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}
