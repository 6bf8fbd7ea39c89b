package query

/*
	Package query provides a thin interface for querying mongo.
	It wraps https://github.com/mongodb/mongo-go-driver, see
	https://godoc.org/go.mongodb.org/mongo-driver/mongo for details.
*/

import (
	"fmt"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

// Mongo abstracts the mongo layer
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne gets one document from the table, returns ErrNotFound if the
	// query matches nothing
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns the count of matched documents in the table
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Search sorts order by the `sort` argument (ex "timestamp" ascending,
	// "-timestamp" descending). If `sort` is "" the order of results is
	// whatever mongo returns.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove removes one document from the table, returns ErrNotFound if
	// the selector matches nothing
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// RemoveAll removes all documents matching the selector from the table
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)
}
