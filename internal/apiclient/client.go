// Package apiclient talks to the remote Route/Booking REST API that owns all persistent state.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/utils"
)

const maxErrorBody = 4 << 10

// Client is safe for concurrent use.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client rooted at baseURL, e.g. "http://127.0.0.1:8000/api".
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ListRoutes calls GET /routes/ with optional source, destination and date filters.
func (c *Client) ListRoutes(ctx context.Context, criteria domain.Criteria) ([]domain.Route, error) {
	return c.routes(ctx, "list_routes", "/routes/", criteria)
}

// SearchRoutes calls GET /routes/search/.
func (c *Client) SearchRoutes(ctx context.Context, criteria domain.Criteria) ([]domain.Route, error) {
	return c.routes(ctx, "search_routes", "/routes/search/", criteria)
}

func (c *Client) routes(ctx context.Context, op, path string, criteria domain.Criteria) ([]domain.Route, error) {
	var payload []routePayload
	if err := c.do(ctx, op, http.MethodGet, path, criteriaQuery(criteria), "", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]domain.Route, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// GetRoute calls GET /routes/{id}/.
func (c *Client) GetRoute(ctx context.Context, id domain.ID) (domain.Route, error) {
	var payload routePayload
	path := fmt.Sprintf("/routes/%d/", id)
	if err := c.do(ctx, "get_route", http.MethodGet, path, nil, "", nil, &payload); err != nil {
		return domain.Route{}, err
	}
	return payload.toDomain(), nil
}

// ListRouteBookings calls GET /bookings/?route={id}.
func (c *Client) ListRouteBookings(ctx context.Context, token string, routeID domain.ID) ([]domain.Booking, error) {
	q := url.Values{}
	q.Set("route", strconv.FormatInt(int64(routeID), 10))
	out, err := c.bookings(ctx, "list_route_bookings", token, q)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].RouteID == 0 {
			out[i].RouteID = routeID
		}
	}
	return out, nil
}

// ListBookings calls GET /bookings/ for the token's owner.
func (c *Client) ListBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	return c.bookings(ctx, "list_bookings", token, nil)
}

func (c *Client) bookings(ctx context.Context, op, token string, q url.Values) ([]domain.Booking, error) {
	if token == "" {
		return nil, domain.UnauthorizedError{Msg: "login required"}
	}
	var payload []bookingPayload
	if err := c.do(ctx, op, http.MethodGet, "/bookings/", q, token, nil, &payload); err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// CreateBooking calls POST /bookings/.
func (c *Client) CreateBooking(ctx context.Context, token string, req domain.BookingRequest) (domain.Booking, error) {
	if token == "" {
		return domain.Booking{}, domain.UnauthorizedError{Msg: "login required"}
	}
	var payload bookingPayload
	if err := c.do(ctx, "create_booking", http.MethodPost, "/bookings/", nil, token, req, &payload); err != nil {
		return domain.Booking{}, err
	}
	b := payload.toDomain()
	if b.RouteID == 0 {
		b.RouteID = req.Route
	}
	if b.SeatNumber == 0 {
		b.SeatNumber = req.SeatNumber
	}
	return b, nil
}

// Signup calls POST /signup/.
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) error {
	return c.do(ctx, "signup", http.MethodPost, "/signup/", nil, "", req, nil)
}

// ObtainToken exchanges credentials at POST /token/.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (domain.TokenPair, error) {
	body := map[string]string{"username": username, "password": password}
	var payload tokenPayload
	if err := c.do(ctx, "obtain_token", http.MethodPost, "/token/", nil, "", body, &payload); err != nil {
		return domain.TokenPair{}, err
	}
	access := utils.FirstNonEmpty(payload.Access.String(), payload.Token.String())
	if access == "" {
		return domain.TokenPair{}, domain.UpstreamError{Op: "obtain_token", Err: fmt.Errorf("response carried no access token")}
	}
	return domain.TokenPair{Access: access, Refresh: payload.Refresh.String()}, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, token string, in, out any) error {
	endpoint := c.BaseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return domain.InternalError{Msg: "encode request", Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return domain.InternalError{Msg: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.UpstreamError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := errorDetail(raw)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.UnauthorizedError{Msg: utils.FirstNonEmpty(detail, "session expired, please log in again")}
	case http.StatusNotFound:
		return domain.NotFoundError{Resource: strings.TrimPrefix(op, "get_")}
	case http.StatusBadRequest:
		return domain.ValidationError{Msg: utils.FirstNonEmpty(detail, "request rejected")}
	case http.StatusConflict:
		return domain.ConflictError{Msg: utils.FirstNonEmpty(detail, "request conflicts with current state")}
	default:
		var err error
		if detail != "" {
			err = fmt.Errorf("%s", detail)
		}
		return domain.UpstreamError{Op: op, Status: resp.StatusCode, Err: err}
	}
}

// errorDetail extracts a human message from a DRF-style error body.
func errorDetail(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var p errorPayload
	if err := json.Unmarshal(raw, &p); err == nil {
		if msg := utils.FirstNonEmpty(p.Detail.String(), p.Error.String(), p.Message.String()); msg != "" {
			return msg
		}
	}
	var fields map[string][]string
	if err := json.Unmarshal(raw, &fields); err == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for k, v := range fields {
			parts = append(parts, k+": "+strings.Join(v, " "))
		}
		sort.Strings(parts)
		return strings.Join(parts, "; ")
	}
	if raw[0] == '<' {
		return ""
	}
	return utils.NormalizeSpace(string(raw))
}

func criteriaQuery(c domain.Criteria) url.Values {
	if c.IsEmpty() {
		return nil
	}
	q := url.Values{}
	if s := strings.TrimSpace(c.Source); s != "" {
		q.Set("source", s)
	}
	if s := strings.TrimSpace(c.Destination); s != "" {
		q.Set("destination", s)
	}
	if !c.Date.IsZero() {
		q.Set("date", utils.FormatDate(c.Date))
	}
	return q
}
