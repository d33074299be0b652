package availability

import (
	"strings"
	"time"

	"busbooking/internal/domain"
)

// ValidateRoute rejects records that lack identity. Everything else degrades to defaults.
func ValidateRoute(r domain.Route) error {
	if r.ID <= 0 {
		return domain.InvalidRouteDataError{Reason: "missing id"}
	}
	if strings.TrimSpace(r.Source) == "" || strings.TrimSpace(r.Destination) == "" {
		return domain.InvalidRouteDataError{RouteID: r.ID, Reason: "missing source or destination"}
	}
	return nil
}

// Sanitize splits routes into renderable ones and the errors for those that were skipped.
func Sanitize(routes []domain.Route) ([]domain.Route, []error) {
	valid := make([]domain.Route, 0, len(routes))
	var skipped []error
	for _, r := range routes {
		if err := ValidateRoute(r); err != nil {
			skipped = append(skipped, err)
			continue
		}
		valid = append(valid, r)
	}
	return valid, skipped
}

// FilterRoutes keeps routes matching every criterion that is set.
// Source and destination match by case-insensitive substring, date by calendar day.
// The result is always a fresh slice in input order.
func FilterRoutes(routes []domain.Route, c domain.Criteria) []domain.Route {
	source := strings.ToLower(strings.TrimSpace(c.Source))
	dest := strings.ToLower(strings.TrimSpace(c.Destination))

	out := make([]domain.Route, 0, len(routes))
	for _, r := range routes {
		if source != "" && !strings.Contains(strings.ToLower(r.Source), source) {
			continue
		}
		if dest != "" && !strings.Contains(strings.ToLower(r.Destination), dest) {
			continue
		}
		if !c.Date.IsZero() && !sameDay(r.Date, c.Date) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GroupRoutes buckets routes by "source → destination".
// Groups come out in order of first occurrence; routes keep input order within a group.
func GroupRoutes(routes []domain.Route) []domain.RouteGroup {
	groups := []domain.RouteGroup{}
	index := map[string]int{}
	for _, r := range routes {
		key := r.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.RouteGroup{
				Key:         key,
				Source:      r.Source,
				Destination: r.Destination,
			})
		}
		groups[i].Routes = append(groups[i].Routes, r)
	}
	return groups
}

// DistinctSources lists unique sources in first-seen order, for filter dropdowns.
func DistinctSources(routes []domain.Route) []string {
	return distinct(routes, func(r domain.Route) string { return r.Source })
}

// DistinctDestinations lists unique destinations in first-seen order.
func DistinctDestinations(routes []domain.Route) []string {
	return distinct(routes, func(r domain.Route) string { return r.Destination })
}

func distinct(routes []domain.Route, field func(domain.Route) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range routes {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
