package request

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Email:     "rider@stable.com",
		Password:  "Passw0rd1",
		FirstName: "Anna",
		LastName:  "Kovacs",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "ab1"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without digit", func(t *testing.T) {
		req := valid
		req.Password = "onlyletters"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without letter", func(t *testing.T) {
		req := valid
		req.Password = "1234567890"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("unknown membership type", func(t *testing.T) {
		req := valid
		req.MembershipType = "platinum"
		assert.Error(t, req.Validate())
	})
}

func TestLessonRequest_Validate(t *testing.T) {
	t.Run("duration too short", func(t *testing.T) {
		req := LessonRequest{InstructorID: 1, StudentID: 2, DurationMinutes: 5, LessonType: "private"}
		assert.Error(t, req.Validate())
	})

	t.Run("duration too long", func(t *testing.T) {
		req := LessonRequest{InstructorID: 1, StudentID: 2, DurationMinutes: 300, LessonType: "private"}
		req.ScheduledAt = time.Now()
		assert.Error(t, req.Validate())
	})

	t.Run("unknown lesson type", func(t *testing.T) {
		req := LessonRequest{InstructorID: 1, StudentID: 2, DurationMinutes: 60, LessonType: "jousting"}
		assert.Error(t, req.Validate())
	})
}

func ctxWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)

	return ctx
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"limit capped", "limit=1000", 1, 100},
		{"zero page falls back", "page=0", 1, 10},
		{"negative limit falls back", "limit=-5", 1, 10},
		{"garbage falls back", "page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ParsePage(ctxWithQuery(t, tt.query))
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantLimit, page.Limit)
		})
	}
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, Page{Page: 5, Limit: 10}.Offset())
}

func TestQueryHelpers(t *testing.T) {
	ctx := ctxWithQuery(t, "user_id=7&is_active=true&from=2026-03-01T00:00:00Z&bad=xx")

	id := QueryUint(ctx, "user_id")
	require.NotNil(t, id)
	assert.Equal(t, uint(7), *id)

	active := QueryBool(ctx, "is_active")
	require.NotNil(t, active)
	assert.True(t, *active)

	from := QueryTime(ctx, "from")
	require.NotNil(t, from)
	assert.Equal(t, 2026, from.Year())

	assert.Nil(t, QueryUint(ctx, "missing"))
	assert.Nil(t, QueryUint(ctx, "bad"))
	assert.Nil(t, QueryBool(ctx, "bad"))
	assert.Nil(t, QueryTime(ctx, "bad"))
}
