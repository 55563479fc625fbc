package viewmodels

type UserListItem struct {
	ID          string
	FullName    string
	Email       string
	Phone       string
	Role        string
	RoleLabel   string
	Language    string
	Status      string
	StatusLabel string
}

type UsersListPageProps struct {
	Title    string
	Items    []*UserListItem
	Total    int
	Query    string
	Search   string
	Role     string
	Status   string
	State    string
	FormOpen bool
}
