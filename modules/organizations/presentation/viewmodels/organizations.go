package viewmodels

type OrganizationListItem struct {
	ID          string
	Name        string
	Code        string
	Email       string
	Employees   string
	Status      string
	StatusLabel string
}

// OrganizationDetail is the read-only panel shown instead of a view form.
type OrganizationDetail struct {
	ID          string
	Name        string
	Code        string
	Email       string
	Phone       string
	Address     string
	Website     string
	Employees   string
	StatusLabel string
	CreatedAt   string
}

type OrganizationsListPageProps struct {
	Title    string
	Items    []*OrganizationListItem
	Total    int
	Query    string
	Search   string
	Status   string
	State    string
	FormOpen bool
	Detail   *OrganizationDetail
}
