package repository

import (
	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
)

// tokenSet is an enumerable set of token ids with O(1) membership and
// removal. Removal swaps the last element into the vacated slot, so
// enumeration order is insertion order only until the first removal.
type tokenSet struct {
	order []domain.TokenId
	pos   map[domain.TokenId]int
}

func newTokenSet() *tokenSet {
	return &tokenSet{pos: map[domain.TokenId]int{}}
}

func (s *tokenSet) add(id domain.TokenId) bool {
	if _, ok := s.pos[id]; ok {
		return false
	}
	s.pos[id] = len(s.order)
	s.order = append(s.order, id)
	return true
}

func (s *tokenSet) remove(id domain.TokenId) bool {
	i, ok := s.pos[id]
	if !ok {
		return false
	}
	last := len(s.order) - 1
	moved := s.order[last]
	s.order[i] = moved
	s.pos[moved] = i
	s.order = s.order[:last]
	delete(s.pos, id)
	return true
}

func (s *tokenSet) contains(id domain.TokenId) bool {
	_, ok := s.pos[id]
	return ok
}

func (s *tokenSet) len() int {
	return len(s.order)
}

// collectionIndex is the two-level index over listed tokens. A
// collection is a member exactly while it has at least one listed
// token; the last Remove for a collection also drops the collection
// itself. The running total avoids summing per-collection sizes on
// every count query.
type collectionIndex struct {
	collections []domain.Address
	colPos      map[domain.Address]int
	tokens      map[domain.Address]*tokenSet
	total       int
}

func NewCollectionIndex() marketplace.Index {
	return &collectionIndex{
		colPos: map[domain.Address]int{},
		tokens: map[domain.Address]*tokenSet{},
	}
}

func (x *collectionIndex) Add(c bCtx.Ctx, id marketplace.ListingId) {
	set, ok := x.tokens[id.Collection]
	if !ok {
		set = newTokenSet()
		x.tokens[id.Collection] = set
		x.colPos[id.Collection] = len(x.collections)
		x.collections = append(x.collections, id.Collection)
	}
	if set.add(id.TokenId) {
		x.total++
	}
}

func (x *collectionIndex) Remove(c bCtx.Ctx, id marketplace.ListingId) {
	set, ok := x.tokens[id.Collection]
	if !ok {
		return
	}
	if !set.remove(id.TokenId) {
		return
	}
	x.total--
	if set.len() > 0 {
		return
	}
	i := x.colPos[id.Collection]
	last := len(x.collections) - 1
	moved := x.collections[last]
	x.collections[i] = moved
	x.colPos[moved] = i
	x.collections = x.collections[:last]
	delete(x.colPos, id.Collection)
	delete(x.tokens, id.Collection)
}

func (x *collectionIndex) Contains(c bCtx.Ctx, id marketplace.ListingId) bool {
	set, ok := x.tokens[id.Collection]
	return ok && set.contains(id.TokenId)
}

func (x *collectionIndex) TotalCount(c bCtx.Ctx) int {
	return x.total
}

func (x *collectionIndex) Collections(c bCtx.Ctx) []domain.Address {
	res := make([]domain.Address, len(x.collections))
	copy(res, x.collections)
	return res
}

func (x *collectionIndex) TokenIds(c bCtx.Ctx, collection domain.Address) []domain.TokenId {
	set, ok := x.tokens[collection]
	if !ok {
		return nil
	}
	res := make([]domain.TokenId, len(set.order))
	copy(res, set.order)
	return res
}
