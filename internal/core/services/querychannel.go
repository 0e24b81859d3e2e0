package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// Ticket tags a resolver request with the query it was issued for.
type Ticket struct {
	// Seq orders tickets. Only the highest issued Seq is current.
	Seq uint64

	// ID correlates log lines for one request.
	ID string

	Query    domain.Query
	IssuedAt time.Time
}

// Response is the outcome of resolving a ticket.
type Response struct {
	Ticket       Ticket
	Results      []domain.ResultEntry
	InlineResult string

	// Err is set when the resolver failed. Results is empty in that case.
	Err error
}

// QueryChannel issues tagged resolver requests and decides which
// responses are still wanted. Superseded requests are never cancelled;
// their responses are rejected on arrival.
type QueryChannel struct {
	resolver driven.ResultResolver
	now      func() time.Time
	log      zerolog.Logger

	seq     uint64
	current uint64
	outbox  []Ticket
}

// NewQueryChannel creates a channel backed by resolver.
func NewQueryChannel(resolver driven.ResultResolver) *QueryChannel {
	return &QueryChannel{
		resolver: resolver,
		now:      time.Now,
		log:      logger.Component("querychannel"),
	}
}

// Issue records q as the latest query and queues a ticket for it.
func (c *QueryChannel) Issue(q domain.Query) Ticket {
	c.seq++
	c.current = c.seq
	t := Ticket{
		Seq:      c.seq,
		ID:       uuid.NewString(),
		Query:    q,
		IssuedAt: c.now(),
	}
	c.outbox = append(c.outbox, t)
	c.log.Debug().
		Str("ticket", t.ID).
		Uint64("seq", t.Seq).
		Str("mode", q.Mode.String()).
		Str("search", q.SearchString).
		Msg("query issued")
	return t
}

// Drain returns and clears the queued tickets, oldest first.
func (c *QueryChannel) Drain() []Ticket {
	out := c.outbox
	c.outbox = nil
	return out
}

// Pending reports whether tickets are waiting to be drained.
func (c *QueryChannel) Pending() bool {
	return len(c.outbox) > 0
}

// IsCurrent reports whether t is the latest issued ticket.
func (c *QueryChannel) IsCurrent(t Ticket) bool {
	return t.Seq != 0 && t.Seq == c.current
}

// Invalidate makes every outstanding ticket stale and drops queued ones.
func (c *QueryChannel) Invalidate() {
	c.seq++
	c.current = 0
	c.outbox = nil
}

// Resolve asks the resolver to answer t. Failures are logged and
// reported through Response.Err with an empty result list.
// Resolve is safe to call from a goroutine other than the owner's.
func (c *QueryChannel) Resolve(ctx context.Context, t Ticket) (resp Response) {
	resp.Ticket = t

	defer func() {
		if r := recover(); r != nil {
			resp.Results = nil
			resp.InlineResult = ""
			resp.Err = fmt.Errorf("%w: resolver panic: %v", domain.ErrResolverUnavailable, r)
			c.log.Error().Str("ticket", t.ID).Err(resp.Err).Msg("resolve failed")
		}
	}()

	if c.resolver == nil {
		resp.Err = domain.ErrResolverUnavailable
		return resp
	}

	start := c.now()
	out, err := c.resolver.Resolve(ctx, t.Query)
	if err != nil {
		resp.Err = fmt.Errorf("resolve %q: %w", t.Query.SearchString, err)
		c.log.Warn().Str("ticket", t.ID).Err(err).Msg("resolve failed")
		return resp
	}
	if out != nil {
		resp.Results = out.Results
		resp.InlineResult = out.InlineResult
	}

	c.log.Debug().
		Str("ticket", t.ID).
		Int("results", len(resp.Results)).
		Dur("took", c.now().Sub(start)).
		Msg("query resolved")
	return resp
}
