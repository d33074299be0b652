package services

import (
	"context"
	"fmt"
	"time"

	"busbooking/internal/availability"
	"busbooking/internal/domain"
	"busbooking/internal/utils"
)

// RouteService turns API snapshots into route listings and seat maps.
type RouteService struct {
	API    RouteAPI
	Engine availability.Engine
}

// Browse lists routes matching the criteria, grouped by source and destination.
// The API may ignore query parameters, so the criteria are applied again locally.
func (s RouteService) Browse(ctx context.Context, criteria domain.Criteria) (BrowseResult, error) {
	routes, err := s.API.ListRoutes(ctx, criteria)
	if err != nil {
		return BrowseResult{}, err
	}

	valid, skipped := availability.Sanitize(routes)
	for _, e := range skipped {
		utils.LogWarn(utils.RequestID(ctx), "routes", "browse_skip", e)
	}

	filtered := availability.FilterRoutes(valid, criteria)
	groups := availability.GroupRoutes(filtered)

	out := BrowseResult{
		Groups:       make([]GroupView, 0, len(groups)),
		Sources:      availability.DistinctSources(valid),
		Destinations: availability.DistinctDestinations(valid),
		Skipped:      len(skipped),
	}
	for _, g := range groups {
		gv := GroupView{Key: g.Key, Source: g.Source, Destination: g.Destination, Routes: make([]RouteView, 0, len(g.Routes))}
		for _, r := range g.Routes {
			a, err := s.Engine.Resolve(r, nil, false)
			if err != nil {
				utils.LogWarn(utils.RequestID(ctx), "routes", "browse_skip", err)
				out.Skipped++
				continue
			}
			gv.Routes = append(gv.Routes, newRouteView(r, a))
			out.Count++
		}
		if len(gv.Routes) > 0 {
			out.Groups = append(out.Groups, gv)
		}
	}

	utils.LogEvent(utils.RequestID(ctx), "routes", "browse",
		fmt.Sprintf("fetched=%d shown=%d groups=%d skipped=%d", len(routes), out.Count, len(out.Groups), out.Skipped))
	return out, nil
}

// Search calls the dedicated search endpoint. Source, destination and date are all required.
func (s RouteService) Search(ctx context.Context, criteria domain.Criteria) ([]RouteView, error) {
	if !criteria.Complete() {
		return nil, domain.ValidationError{Field: "criteria", Msg: "source, destination and date are required"}
	}
	routes, err := s.API.SearchRoutes(ctx, criteria)
	if err != nil {
		return nil, err
	}

	valid, skipped := availability.Sanitize(routes)
	for _, e := range skipped {
		utils.LogWarn(utils.RequestID(ctx), "routes", "search_skip", e)
	}

	out := make([]RouteView, 0, len(valid))
	for _, r := range valid {
		a, err := s.Engine.Resolve(r, nil, false)
		if err != nil {
			continue
		}
		out = append(out, newRouteView(r, a))
	}
	return out, nil
}

// SeatMap renders one route's seats. With a token the route's bookings are fetched and
// become the source of truth; selected > 0 marks that seat as the user's pick.
func (s RouteService) SeatMap(ctx context.Context, token string, routeID domain.ID, selected int) (SeatMapView, error) {
	if routeID <= 0 {
		return SeatMapView{}, domain.ValidationError{Field: "route", Msg: "invalid route id"}
	}
	route, err := s.API.GetRoute(ctx, routeID)
	if err != nil {
		return SeatMapView{}, err
	}
	if route.ID == 0 {
		route.ID = routeID
	}

	var (
		bookings []domain.Booking
		fetched  bool
	)
	if token != "" {
		bookings, err = s.API.ListRouteBookings(ctx, token, routeID)
		switch {
		case err == nil:
			fetched = true
		case domain.IsUnauthorized(err):
			return SeatMapView{}, err
		default:
			utils.LogWarn(utils.RequestID(ctx), "routes", "seat_map_bookings", err)
		}
	}

	a, err := s.Engine.Resolve(route, bookings, fetched)
	if err != nil {
		return SeatMapView{}, err
	}

	view := SeatMapView{}
	if selected > 0 && a.SeatsKnown {
		a.Seats = availability.SelectSeat(a.Seats, selected)
		if n, ok := a.Seats.Selected(); ok {
			view.Selected = n
		}
	}
	view.Route = newRouteView(route, a)
	return view, nil
}

func clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
