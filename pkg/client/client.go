// Package client is the Go SDK for the helpdesk ticket API. It hosts the
// read-side concerns that live on the consuming side: the "mine" view computed
// by client-side filtering over a bounded superset, local pagination, and
// discarding of superseded in-flight list results.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// DefaultMineBatchSize bounds the superset fetched for the "mine" view. The
// fixed cap is a known scalability boundary standing in for a missing
// owner-scoped server filter.
const DefaultMineBatchSize = 1000

// ErrSuperseded reports that a newer request for the same view was issued
// while this one was in flight; the stale result must not be rendered.
var ErrSuperseded = errors.New("client: result superseded by a newer request")

// ErrNoSession reports that no user is signed in.
var ErrNoSession = errors.New("client: no current user")

// UserRef identifies the signed-in caller.
type UserRef struct {
	ID   string
	Role domain.Role
}

// SessionStore provides the current user's identity and role. The SDK never
// reads ambient storage itself.
type SessionStore interface {
	CurrentUser() (UserRef, bool)
}

// ListOptions captures listing parameters. Query is an optional title/id
// substring filter applied to the fetched page.
type ListOptions struct {
	Status   string
	Priority string
	Query    string
	Page     int
	Size     int
}

// CreateTicketInput is the creation payload.
type CreateTicketInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
}

// Client calls the ticket and user APIs over a Transport.
type Client struct {
	transport     Transport
	session       SessionStore
	mineBatchSize int

	mu          sync.Mutex
	generations map[string]uint64
}

// Option customizes the client.
type Option func(*Client)

// WithMineBatchSize overrides the superset cap for the "mine" view.
func WithMineBatchSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.mineBatchSize = size
		}
	}
}

// New builds a client.
func New(transport Transport, session SessionStore, opts ...Option) *Client {
	c := &Client{
		transport:     transport,
		session:       session,
		mineBatchSize: DefaultMineBatchSize,
		generations:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches one server-paginated page of tickets.
func (c *Client) List(ctx context.Context, opts ListOptions) (Page[Ticket], error) {
	generation := c.nextGeneration("list")

	query := url.Values{}
	query.Set("page", strconv.Itoa(max(opts.Page, 0)))
	query.Set("size", strconv.Itoa(pageSizeOrDefault(opts.Size)))
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Priority != "" {
		query.Set("priority", opts.Priority)
	}

	var page Page[Ticket]
	status, raw, err := c.transport.Do(ctx, http.MethodGet, "/tickets", query, nil)
	if err != nil {
		return Page[Ticket]{}, err
	}
	if err := decodeResponse(status, raw, &page); err != nil {
		return Page[Ticket]{}, err
	}
	if c.superseded("list", generation) {
		return Page[Ticket]{}, ErrSuperseded
	}

	if q := strings.TrimSpace(opts.Query); q != "" {
		page.Content = filterByQuery(page.Content, q)
	}
	return page, nil
}

// ListMine fetches a bounded superset and computes the caller's view locally:
// tickets assigned to a TECH, or created by a CLIENT. An ADMIN sees the
// assigned view. The filtered sequence is re-paginated with the requested
// size, clamping the page index into the filtered set's range.
func (c *Client) ListMine(ctx context.Context, opts ListOptions) (Page[Ticket], error) {
	user, ok := c.session.CurrentUser()
	if !ok {
		return Page[Ticket]{}, ErrNoSession
	}
	generation := c.nextGeneration("mine")

	query := url.Values{}
	query.Set("page", "0")
	query.Set("size", strconv.Itoa(c.mineBatchSize))
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Priority != "" {
		query.Set("priority", opts.Priority)
	}

	var superset Page[Ticket]
	status, raw, err := c.transport.Do(ctx, http.MethodGet, "/tickets", query, nil)
	if err != nil {
		return Page[Ticket]{}, err
	}
	if err := decodeResponse(status, raw, &superset); err != nil {
		return Page[Ticket]{}, err
	}
	if c.superseded("mine", generation) {
		return Page[Ticket]{}, ErrSuperseded
	}

	mine := filterMine(superset.Content, user)
	if q := strings.TrimSpace(opts.Query); q != "" {
		mine = filterByQuery(mine, q)
	}

	local := domain.PaginateLocal(mine, opts.Page, pageSizeOrDefault(opts.Size))
	return Page[Ticket]{
		Content:       local.Content,
		Number:        local.Number,
		Size:          local.Size,
		TotalElements: local.TotalElements,
		TotalPages:    local.TotalPages,
		First:         local.First,
		Last:          local.Last,
	}, nil
}

// Create opens a ticket.
func (c *Client) Create(ctx context.Context, input CreateTicketInput) (*Ticket, error) {
	status, raw, err := c.transport.Do(ctx, http.MethodPost, "/tickets", nil, input)
	if err != nil {
		return nil, err
	}
	var ticket Ticket
	if err := decodeResponse(status, raw, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Get fetches one ticket.
func (c *Client) Get(ctx context.Context, ticketID string) (*Ticket, error) {
	status, raw, err := c.transport.Do(ctx, http.MethodGet, "/tickets/"+url.PathEscape(ticketID), nil, nil)
	if err != nil {
		return nil, err
	}
	var ticket Ticket
	if err := decodeResponse(status, raw, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ChangeStatus requests a status transition. The boolean reports whether the
// server actually mutated the ticket; a same-status request returns false.
func (c *Client) ChangeStatus(ctx context.Context, ticketID, targetStatus string) (*Ticket, bool, error) {
	status, raw, err := c.transport.Do(ctx, http.MethodPatch,
		fmt.Sprintf("/tickets/%s/status", url.PathEscape(ticketID)), nil,
		map[string]string{"status": targetStatus})
	if err != nil {
		return nil, false, err
	}
	var resp changeStatusResponse
	if err := decodeResponse(status, raw, &resp); err != nil {
		return nil, false, err
	}
	return &resp.Ticket, resp.Changed, nil
}

// Assign binds a technician to a ticket.
func (c *Client) Assign(ctx context.Context, ticketID, techID string) (*Ticket, bool, error) {
	status, raw, err := c.transport.Do(ctx, http.MethodPatch,
		fmt.Sprintf("/tickets/%s/assign/%s", url.PathEscape(ticketID), url.PathEscape(techID)), nil, nil)
	if err != nil {
		return nil, false, err
	}
	var resp changeStatusResponse
	if err := decodeResponse(status, raw, &resp); err != nil {
		return nil, false, err
	}
	return &resp.Ticket, resp.Changed, nil
}

// History pages through a ticket's audit log.
func (c *Client) History(ctx context.Context, ticketID string, page, size int) (Page[HistoryEntry], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page, 0)))
	query.Set("size", strconv.Itoa(pageSizeOrDefault(size)))

	var result Page[HistoryEntry]
	status, raw, err := c.transport.Do(ctx, http.MethodGet,
		fmt.Sprintf("/tickets/%s/history", url.PathEscape(ticketID)), query, nil)
	if err != nil {
		return Page[HistoryEntry]{}, err
	}
	if err := decodeResponse(status, raw, &result); err != nil {
		return Page[HistoryEntry]{}, err
	}
	return result, nil
}

// DeleteTicket removes a ticket (administrative).
func (c *Client) DeleteTicket(ctx context.Context, ticketID string) error {
	status, raw, err := c.transport.Do(ctx, http.MethodDelete, "/tickets/"+url.PathEscape(ticketID), nil, nil)
	if err != nil {
		return err
	}
	return decodeResponse(status, raw, nil)
}

// ListUsers fetches one page of user projections.
func (c *Client) ListUsers(ctx context.Context, role, sort string, page, size int) (Page[UserSummary], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page, 0)))
	query.Set("size", strconv.Itoa(pageSizeOrDefault(size)))
	if role != "" {
		query.Set("role", role)
	}
	if sort != "" {
		query.Set("sort", sort)
	}

	var result Page[UserSummary]
	status, raw, err := c.transport.Do(ctx, http.MethodGet, "/users", query, nil)
	if err != nil {
		return Page[UserSummary]{}, err
	}
	if err := decodeResponse(status, raw, &result); err != nil {
		return Page[UserSummary]{}, err
	}
	return result, nil
}

// DeleteUser removes a user (administrative; the server refuses ADMIN targets).
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	status, raw, err := c.transport.Do(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return err
	}
	return decodeResponse(status, raw, nil)
}

func (c *Client) nextGeneration(view string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[view]++
	return c.generations[view]
}

func (c *Client) superseded(view string, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[view] != generation
}

func filterMine(tickets []Ticket, user UserRef) []Ticket {
	mine := make([]Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		switch user.Role {
		case domain.RoleClient:
			if ticket.CreatedBy != nil && ticket.CreatedBy.ID == user.ID {
				mine = append(mine, ticket)
			}
		case domain.RoleTech, domain.RoleAdmin:
			if ticket.AssignedTo != nil && ticket.AssignedTo.ID == user.ID {
				mine = append(mine, ticket)
			}
		}
	}
	return mine
}

func filterByQuery(tickets []Ticket, q string) []Ticket {
	q = strings.ToLower(q)
	filtered := make([]Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if strings.Contains(strings.ToLower(ticket.Title), q) ||
			strings.Contains(strings.ToLower(ticket.ID), q) {
			filtered = append(filtered, ticket)
		}
	}
	return filtered
}

func pageSizeOrDefault(size int) int {
	if size < 1 {
		return 10
	}
	return size
}
