package viewmodels

type TaskListItem struct {
	ID            string
	Title         string
	Assignee      string
	Priority      int
	EstimateHours string
	DueDate       string
	Overdue       bool
	Status        string
	StatusLabel   string
}

// TaskColumn groups the visible tasks of one status.
type TaskColumn struct {
	Status string
	Label  string
	Items  []*TaskListItem
}

type TasksListPageProps struct {
	Title    string
	Items    []*TaskListItem
	Columns  []*TaskColumn
	Total    int
	Query    string
	Search   string
	State    string
	FormOpen bool
}
