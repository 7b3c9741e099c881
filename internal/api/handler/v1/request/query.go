package request

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Page holds the normalized pagination query. Out-of-range values fall
// back to the defaults instead of erroring.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ParsePage(ctx *gin.Context) Page {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Page{Page: page, Limit: limit}
}

func QueryUint(ctx *gin.Context, name string) *uint {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}

	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}

	v := uint(parsed)

	return &v
}

func QueryBool(ctx *gin.Context, name string) *bool {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}

	return &parsed
}

func QueryTime(ctx *gin.Context, name string) *time.Time {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}

	return &parsed
}

// ParamID parses a positive numeric path parameter, 0 when malformed.
func ParamID(ctx *gin.Context, name string) uint {
	parsed, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0
	}

	return uint(parsed)
}
