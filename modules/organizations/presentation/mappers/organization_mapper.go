package mappers

import (
	"strconv"
	"time"

	"github.com/iota-uz/iota-console/modules/organizations/domain/organization"
	"github.com/iota-uz/iota-console/modules/organizations/presentation/viewmodels"
	"github.com/iota-uz/iota-console/pkg/intl"
	"github.com/iota-uz/iota-console/pkg/resource"
)

func statusLabel(s organization.Status, tr intl.Translator) string {
	return tr.T("Organizations.Statuses."+string(s), nil)
}

func OrganizationToListItem(o organization.Organization, tr intl.Translator) *viewmodels.OrganizationListItem {
	return &viewmodels.OrganizationListItem{
		ID:          o.ID,
		Name:        o.Name,
		Code:        o.Code,
		Email:       o.Email,
		Employees:   strconv.Itoa(o.Employees),
		Status:      string(o.Status),
		StatusLabel: statusLabel(o.Status, tr),
	}
}

func OrganizationToDetail(o organization.Organization, tr intl.Translator) *viewmodels.OrganizationDetail {
	d := &viewmodels.OrganizationDetail{
		ID:          o.ID,
		Name:        o.Name,
		Code:        o.Code,
		Email:       o.Email,
		Phone:       o.Phone,
		Address:     o.Address,
		Website:     o.Website,
		Employees:   strconv.Itoa(o.Employees),
		StatusLabel: statusLabel(o.Status, tr),
	}
	if !o.CreatedAt.IsZero() {
		d.CreatedAt = o.CreatedAt.Format(time.DateTime)
	}
	return d
}

func OrganizationsToListPage(ctl *resource.ListController[organization.Organization, organization.Status], tr intl.Translator) *viewmodels.OrganizationsListPageProps {
	view := ctl.View()
	criteria := ctl.Criteria()

	items := make([]*viewmodels.OrganizationListItem, 0, len(view))
	for _, o := range view {
		items = append(items, OrganizationToListItem(o, tr))
	}
	props := &viewmodels.OrganizationsListPageProps{
		Title:    tr.T("Organizations.Meta.Title", nil),
		Items:    items,
		Total:    len(ctl.Items()),
		Search:   criteria.SearchText,
		Status:   criteria.Filter(resource.StatusField),
		State:    ctl.State().String(),
		FormOpen: ctl.FormOpen(),
	}
	if o, ok := ctl.Detail(); ok {
		props.Detail = OrganizationToDetail(o, tr)
	}
	if values, err := criteria.Values(); err == nil {
		props.Query = values.Encode()
	}
	return props
}
