package mappers

import (
	"time"

	"github.com/iota-uz/iota-console/modules/clients/domain/client"
	"github.com/iota-uz/iota-console/modules/clients/presentation/viewmodels"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/resource"
)

func ClientToListItem(c client.Client, tr intl.Translator) *viewmodels.ClientListItem {
	item := &viewmodels.ClientListItem{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Company:     c.Company,
		Status:      string(c.Status),
		StatusLabel: tr.T("Clients.Statuses."+string(c.Status), nil),
	}
	if !c.CreatedAt.IsZero() {
		item.CreatedAt = c.CreatedAt.Format(time.DateOnly)
	}
	return item
}

func ClientsToListPage(ctl *resource.ListController[client.Client, client.Status], tr intl.Translator) *viewmodels.ClientsListPageProps {
	view := ctl.View()
	criteria := ctl.Criteria()

	items := make([]*viewmodels.ClientListItem, 0, len(view))
	for _, c := range view {
		items = append(items, ClientToListItem(c, tr))
	}

	selected := criteria.Filter(resource.StatusField)
	opts := []*viewmodels.StatusOption{{
		Value:    resource.FilterAll,
		Label:    tr.T("Common.Filters.All", nil),
		Selected: selected == resource.FilterAll,
	}}
	for _, s := range client.Statuses.Members() {
		opts = append(opts, &viewmodels.StatusOption{
			Value:    string(s),
			Label:    tr.T("Clients.Statuses."+string(s), nil),
			Selected: selected == string(s),
		})
	}

	props := &viewmodels.ClientsListPageProps{
		Title:      tr.T("Clients.Meta.Title", nil),
		Items:      items,
		Total:      len(ctl.Items()),
		Search:     criteria.SearchText,
		Status:     selected,
		SortField:  criteria.SortField,
		SortDesc:   criteria.Direction() == resource.Desc,
		State:      ctl.State().String(),
		FormOpen:   ctl.FormOpen(),
		StatusOpts: opts,
	}
	if values, err := criteria.Values(); err == nil {
		props.Query = values.Encode()
	}
	return props
}
