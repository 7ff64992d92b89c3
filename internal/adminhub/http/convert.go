package http

import (
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

func toInvite(inv domain.Invite) adminsdk.Invite {
	domains := inv.AllowedDomains
	if domains == nil {
		domains = []string{}
	}
	return adminsdk.Invite{
		ID:             inv.ID,
		Code:           inv.Code,
		CompanyID:      inv.CompanyID,
		AllowedDomains: domains,
		Status:         string(inv.Status),
		ExpiresAt:      inv.ExpiresAt,
		UsedBy:         inv.UsedBy,
		UsedAt:         inv.UsedAt,
		CreatedBy:      inv.CreatedBy,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

func toUser(u domain.User) adminsdk.User {
	return adminsdk.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CompanyID:   u.CompanyID,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toCompany(c domain.Company) adminsdk.Company {
	return adminsdk.Company{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		Status:       string(c.Status),
		AdminEmail:   c.AdminEmail,
		AdminUserID:  c.AdminUserID,
		Extra:        c.Extra,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCompanyPatch(d adminsdk.CompanyData) domain.CompanyPatch {
	p := domain.CompanyPatch{
		Name:         d.Name,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		Address:      d.Address,
		Extra:        d.Extra,
	}
	if d.Status != nil {
		st := domain.CompanyStatus(*d.Status)
		p.Status = &st
	}
	return p
}

func toPolicy(p domain.ExtensionPolicy) adminsdk.ExtensionPolicy {
	return adminsdk.ExtensionPolicy{
		CompanyID: p.CompanyID,
		Version:   p.Version,
		Document:  p.Document,
		UpdatedBy: p.UpdatedBy,
		UpdatedAt: p.UpdatedAt,
	}
}

func toArchiveRun(r domain.ArchiveRun) adminsdk.ArchiveRun {
	return adminsdk.ArchiveRun{
		ID:              r.ID,
		Trigger:         string(r.Trigger),
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
		ArchivedInvites: r.ArchivedInvites,
		PurgedResets:    r.PurgedResets,
		Error:           r.Error,
	}
}

func toSchedulerStatus(st service.SchedulerStatus) adminsdk.SchedulerStatus {
	out := adminsdk.SchedulerStatus{
		Running:  st.Running,
		Interval: st.Interval.String(),
	}
	if st.LastRun != nil {
		run := toArchiveRun(*st.LastRun)
		out.LastRun = &run
	}
	return out
}

func expiresInSeconds(d time.Duration) int {
	return int(d / time.Second)
}
