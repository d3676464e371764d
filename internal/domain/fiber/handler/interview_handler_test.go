package handler

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mulakatpro/interview-analyzer/internal/model"
	"github.com/mulakatpro/interview-analyzer/internal/usecase"
)

type stubStore struct {
	total int64
}

func (s *stubStore) Create(*model.InterviewSession) error { return nil }
func (s *stubStore) Update(*model.InterviewSession) error { return nil }

func (s *stubStore) FindByID(string) (*model.InterviewSession, error) {
	return nil, fmt.Errorf("record not found")
}

func (s *stubStore) List(page, pageSize int) ([]model.InterviewSession, int64, error) {
	return nil, s.total, nil
}

func newTestApp(store *stubStore) *fiber.App {
	app := fiber.New()
	uc := usecase.NewAnalysisUsecase(nil, nil, nil, store)
	NewInterviewHandler(uc).RegisterRoutes(app)
	return app
}

func TestListClampsPagination(t *testing.T) {
	app := newTestApp(&stubStore{total: 45})

	resp, err := app.Test(httptest.NewRequest("GET", "/interviews?page=-3&page_size=0", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(body, "pagination.page").Int())
	assert.Equal(t, int64(20), gjson.GetBytes(body, "pagination.page_size").Int())
	assert.Equal(t, int64(3), gjson.GetBytes(body, "pagination.total_pages").Int())
	assert.Equal(t, int64(1), gjson.GetBytes(body, "pagination.from").Int())
}

func TestListDefaultPagination(t *testing.T) {
	app := newTestApp(&stubStore{total: 5})

	resp, err := app.Test(httptest.NewRequest("GET", "/interviews", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(body, "pagination.page").Int())
	assert.Equal(t, int64(1), gjson.GetBytes(body, "pagination.total_pages").Int())
	assert.False(t, gjson.GetBytes(body, "pagination.has_more").Bool())
}

func TestNormalizePagination(t *testing.T) {
	page, pageSize := normalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	page, pageSize = normalizePagination(-3, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	page, pageSize = normalizePagination(2, 50)
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, pageSize)
}

func TestGetUnknownSessionReturns404(t *testing.T) {
	app := newTestApp(&stubStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/interviews/unknown-id", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
