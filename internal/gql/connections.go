package gql

import (
	"github.com/cinegraph/cinegraph/internal/domain"
	"github.com/cinegraph/cinegraph/internal/repository"
)

// PageInfoResolver backs the relay PageInfo type.
type PageInfoResolver struct {
	hasNext   bool
	endCursor *string
}

func (p *PageInfoResolver) HasNextPage() bool  { return p.hasNext }
func (p *PageInfoResolver) EndCursor() *string { return p.endCursor }

func pageInfo(cursors []string, hasNext bool) *PageInfoResolver {
	info := &PageInfoResolver{hasNext: hasNext}
	if len(cursors) > 0 {
		last := cursors[len(cursors)-1]
		info.endCursor = &last
	}
	return info
}

// MovieConnectionResolver pages through movies.
type MovieConnectionResolver struct {
	r     *Resolver
	page  repository.ListPage[domain.Movie]
	total int32
}

func (c *MovieConnectionResolver) Edges() []*MovieEdgeResolver {
	edges := make([]*MovieEdgeResolver, len(c.page.Items))
	for i, movie := range c.page.Items {
		edges[i] = &MovieEdgeResolver{
			node:   &MovieResolver{r: c.r, movie: movie},
			cursor: c.page.Cursors[i],
		}
	}
	return edges
}

func (c *MovieConnectionResolver) PageInfo() *PageInfoResolver {
	return pageInfo(c.page.Cursors, c.page.HasNext)
}

func (c *MovieConnectionResolver) TotalCount() int32 { return c.total }

type MovieEdgeResolver struct {
	node   *MovieResolver
	cursor string
}

func (e *MovieEdgeResolver) Node() *MovieResolver { return e.node }
func (e *MovieEdgeResolver) Cursor() string       { return e.cursor }

// ReviewConnectionResolver pages through reviews.
type ReviewConnectionResolver struct {
	r     *Resolver
	page  repository.ListPage[domain.Review]
	total int32
}

func (c *ReviewConnectionResolver) Edges() []*ReviewEdgeResolver {
	edges := make([]*ReviewEdgeResolver, len(c.page.Items))
	for i, review := range c.page.Items {
		edges[i] = &ReviewEdgeResolver{
			node:   &ReviewResolver{r: c.r, review: review},
			cursor: c.page.Cursors[i],
		}
	}
	return edges
}

func (c *ReviewConnectionResolver) PageInfo() *PageInfoResolver {
	return pageInfo(c.page.Cursors, c.page.HasNext)
}

func (c *ReviewConnectionResolver) TotalCount() int32 { return c.total }

type ReviewEdgeResolver struct {
	node   *ReviewResolver
	cursor string
}

func (e *ReviewEdgeResolver) Node() *ReviewResolver { return e.node }
func (e *ReviewEdgeResolver) Cursor() string        { return e.cursor }

// CommentConnectionResolver pages through a review's comments.
type CommentConnectionResolver struct {
	r     *Resolver
	page  repository.ListPage[domain.Comment]
	total int32
}

func (c *CommentConnectionResolver) Edges() []*CommentEdgeResolver {
	edges := make([]*CommentEdgeResolver, len(c.page.Items))
	for i, comment := range c.page.Items {
		edges[i] = &CommentEdgeResolver{
			node:   &CommentResolver{r: c.r, comment: comment},
			cursor: c.page.Cursors[i],
		}
	}
	return edges
}

func (c *CommentConnectionResolver) PageInfo() *PageInfoResolver {
	return pageInfo(c.page.Cursors, c.page.HasNext)
}

func (c *CommentConnectionResolver) TotalCount() int32 { return c.total }

type CommentEdgeResolver struct {
	node   *CommentResolver
	cursor string
}

func (e *CommentEdgeResolver) Node() *CommentResolver { return e.node }
func (e *CommentEdgeResolver) Cursor() string         { return e.cursor }

// CollectionConnectionResolver pages through collections.
type CollectionConnectionResolver struct {
	r     *Resolver
	page  repository.ListPage[domain.Collection]
	total int32
}

func (c *CollectionConnectionResolver) Edges() []*CollectionEdgeResolver {
	edges := make([]*CollectionEdgeResolver, len(c.page.Items))
	for i, collection := range c.page.Items {
		edges[i] = &CollectionEdgeResolver{
			node:   &CollectionResolver{r: c.r, collection: collection},
			cursor: c.page.Cursors[i],
		}
	}
	return edges
}

func (c *CollectionConnectionResolver) PageInfo() *PageInfoResolver {
	return pageInfo(c.page.Cursors, c.page.HasNext)
}

func (c *CollectionConnectionResolver) TotalCount() int32 { return c.total }

type CollectionEdgeResolver struct {
	node   *CollectionResolver
	cursor string
}

func (e *CollectionEdgeResolver) Node() *CollectionResolver { return e.node }
func (e *CollectionEdgeResolver) Cursor() string            { return e.cursor }

// UserConnectionResolver pages through users (thankers, likers).
type UserConnectionResolver struct {
	r     *Resolver
	page  repository.ListPage[domain.User]
	total int32
}

func (c *UserConnectionResolver) Edges() []*UserEdgeResolver {
	edges := make([]*UserEdgeResolver, len(c.page.Items))
	for i, user := range c.page.Items {
		edges[i] = &UserEdgeResolver{
			node:   &UserResolver{r: c.r, user: user},
			cursor: c.page.Cursors[i],
		}
	}
	return edges
}

func (c *UserConnectionResolver) PageInfo() *PageInfoResolver {
	return pageInfo(c.page.Cursors, c.page.HasNext)
}

func (c *UserConnectionResolver) TotalCount() int32 { return c.total }

type UserEdgeResolver struct {
	node   *UserResolver
	cursor string
}

func (e *UserEdgeResolver) Node() *UserResolver { return e.node }
func (e *UserEdgeResolver) Cursor() string      { return e.cursor }
