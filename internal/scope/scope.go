// Package scope filters collections down to what the active role may see.
// Admin and Sales Manager see everything; a Sales Rep sees only their own
// slice of the pipeline. Cross-org reports (funnel, source performance, team
// performance) intentionally bypass this package and read the full
// collections.
package scope

import "dealercrm/internal/domain"

func currentUser(users []domain.User, currentUserID int64) *domain.User {
	for i := range users {
		if users[i].ID == currentUserID {
			return &users[i]
		}
	}
	// Stale id: fall back to the first Admin rather than failing closed.
	for i := range users {
		if users[i].Role == domain.RoleAdmin {
			return &users[i]
		}
	}
	return nil
}

// Leads returns the leads visible to the active user. Input is never mutated.
func Leads(leads []domain.Lead, users []domain.User, currentUserID int64) []domain.Lead {
	u := currentUser(users, currentUserID)
	if u == nil || u.Role.IsManagement() {
		return leads
	}

	out := make([]domain.Lead, 0, len(leads))
	for _, l := range leads {
		if l.AssignedTo != nil && *l.AssignedTo == u.ID {
			out = append(out, l)
		}
	}
	return out
}

// Tasks returns tasks assigned to the rep directly, plus unassigned tasks
// whose parent lead belongs to the rep.
func Tasks(tasks []domain.Task, leads []domain.Lead, users []domain.User, currentUserID int64) []domain.Task {
	u := currentUser(users, currentUserID)
	if u == nil || u.Role.IsManagement() {
		return tasks
	}

	leadOwner := make(map[int64]int64, len(leads))
	for _, l := range leads {
		if l.AssignedTo != nil {
			leadOwner[l.ID] = *l.AssignedTo
		}
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedTo != nil {
			if *t.AssignedTo == u.ID {
				out = append(out, t)
			}
			continue
		}
		if owner, ok := leadOwner[t.LeadID]; ok && owner == u.ID {
			out = append(out, t)
		}
	}
	return out
}

// Communications returns entries whose lead is in the rep's scoped lead set.
func Communications(comms []domain.Communication, leads []domain.Lead, users []domain.User, currentUserID int64) []domain.Communication {
	u := currentUser(users, currentUserID)
	if u == nil || u.Role.IsManagement() {
		return comms
	}

	visible := make(map[int64]struct{}, len(leads))
	for _, l := range Leads(leads, users, currentUserID) {
		visible[l.ID] = struct{}{}
	}

	out := make([]domain.Communication, 0, len(comms))
	for _, c := range comms {
		if _, ok := visible[c.LeadID]; ok {
			out = append(out, c)
		}
	}
	return out
}
