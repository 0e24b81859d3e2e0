package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

func TestQueryChannel_IssueQueuesTickets(t *testing.T) {
	c := NewQueryChannel(&MockResolver{})

	a := c.Issue(domain.Query{SearchString: "a"})
	b := c.Issue(domain.Query{SearchString: "b", Mode: domain.ModeScripts})

	assert.True(t, c.Pending())
	assert.Less(t, a.Seq, b.Seq)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEmpty(t, a.ID)

	tickets := c.Drain()
	require.Len(t, tickets, 2)
	assert.Equal(t, "a", tickets[0].Query.SearchString)
	assert.Equal(t, domain.ModeScripts, tickets[1].Query.Mode)
	assert.False(t, c.Pending())
	assert.Empty(t, c.Drain())
}

func TestQueryChannel_OnlyLatestIsCurrent(t *testing.T) {
	c := NewQueryChannel(&MockResolver{})

	first := c.Issue(domain.Query{SearchString: "foo"})
	assert.True(t, c.IsCurrent(first))

	second := c.Issue(domain.Query{SearchString: "bar"})
	assert.False(t, c.IsCurrent(first))
	assert.True(t, c.IsCurrent(second))
}

func TestQueryChannel_EmptySearchStringIsIssued(t *testing.T) {
	c := NewQueryChannel(&MockResolver{})

	tk := c.Issue(domain.Query{Mode: domain.ModeSearch})

	assert.True(t, c.IsCurrent(tk))
	assert.Len(t, c.Drain(), 1)
}

func TestQueryChannel_Invalidate(t *testing.T) {
	c := NewQueryChannel(&MockResolver{})
	tk := c.Issue(domain.Query{SearchString: "foo"})

	c.Invalidate()

	assert.False(t, c.IsCurrent(tk))
	assert.False(t, c.Pending())
	assert.False(t, c.IsCurrent(Ticket{}))

	next := c.Issue(domain.Query{})
	assert.True(t, c.IsCurrent(next))
	assert.Greater(t, next.Seq, tk.Seq)
}

func TestQueryChannel_Resolve(t *testing.T) {
	resolver := &MockResolver{
		ResolveFunc: func(_ context.Context, q domain.Query) (*domain.QueryResponse, error) {
			return &domain.QueryResponse{Results: fileResults(q.SearchString), InlineResult: "readme.md"}, nil
		},
	}
	c := NewQueryChannel(resolver)
	tk := c.Issue(domain.Query{SearchString: "readme"})

	resp := c.Resolve(context.Background(), tk)

	require.NoError(t, resp.Err)
	assert.Equal(t, tk, resp.Ticket)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "readme", resp.Results[0].Heading)
	assert.Equal(t, "readme.md", resp.InlineResult)
}

func TestQueryChannel_ResolveErrorYieldsEmptyResults(t *testing.T) {
	boom := errors.New("boom")
	c := NewQueryChannel(&MockResolver{
		ResolveFunc: func(context.Context, domain.Query) (*domain.QueryResponse, error) {
			return nil, boom
		},
	})
	tk := c.Issue(domain.Query{SearchString: "x"})

	resp := c.Resolve(context.Background(), tk)

	assert.ErrorIs(t, resp.Err, boom)
	assert.Empty(t, resp.Results)
}

func TestQueryChannel_ResolvePanicIsRecovered(t *testing.T) {
	c := NewQueryChannel(&MockResolver{
		ResolveFunc: func(context.Context, domain.Query) (*domain.QueryResponse, error) {
			panic("resolver exploded")
		},
	})
	tk := c.Issue(domain.Query{})

	var resp Response
	require.NotPanics(t, func() { resp = c.Resolve(context.Background(), tk) })

	assert.ErrorIs(t, resp.Err, domain.ErrResolverUnavailable)
	assert.Empty(t, resp.Results)
}

func TestQueryChannel_ResolveWithoutResolver(t *testing.T) {
	c := NewQueryChannel(nil)
	tk := c.Issue(domain.Query{})

	resp := c.Resolve(context.Background(), tk)

	assert.ErrorIs(t, resp.Err, domain.ErrResolverUnavailable)
}
