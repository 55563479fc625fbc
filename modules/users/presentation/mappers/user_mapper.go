package mappers

import (
	"github.com/iota-uz/iota-console/modules/users/domain/user"
	"github.com/iota-uz/iota-console/modules/users/presentation/viewmodels"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/resource"
)

func UserToListItem(u user.User, tr intl.Translator) *viewmodels.UserListItem {
	return &viewmodels.UserListItem{
		ID:          u.ID,
		FullName:    u.FullName(),
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		RoleLabel:   tr.T("Users.Roles."+string(u.Role), nil),
		Language:    u.Language,
		Status:      string(u.Status),
		StatusLabel: tr.T("Users.Statuses."+string(u.Status), nil),
	}
}

func UsersToListPage(ctl *resource.ListController[user.User, user.Status], tr intl.Translator) *viewmodels.UsersListPageProps {
	view := ctl.View()
	criteria := ctl.Criteria()

	items := make([]*viewmodels.UserListItem, 0, len(view))
	for _, u := range view {
		items = append(items, UserToListItem(u, tr))
	}
	props := &viewmodels.UsersListPageProps{
		Title:    tr.T("Users.Meta.Title", nil),
		Items:    items,
		Total:    len(ctl.Items()),
		Search:   criteria.SearchText,
		Role:     criteria.Filter("role"),
		Status:   criteria.Filter(resource.StatusField),
		State:    ctl.State().String(),
		FormOpen: ctl.FormOpen(),
	}
	if values, err := criteria.Values(); err == nil {
		props.Query = values.Encode()
	}
	return props
}
