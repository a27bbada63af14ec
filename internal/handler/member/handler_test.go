package member

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerefharsh/amp-csr-portal/internal/model"
	"github.com/zerefharsh/amp-csr-portal/internal/repository/memory"
	"github.com/zerefharsh/amp-csr-portal/internal/service/member"
)

func newTestRouter(store *memory.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	svc := member.NewService(store.Members(), store.Subscriptions(), store.Vehicles())
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Category string `json:"category"`
		Message  string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestListMembersEndpoint(t *testing.T) {
	store := memory.NewStore()
	store.PutMember(&model.Member{
		ID: uuid.New(), Name: "Alice", Email: "alice@example.com",
		Status: model.MemberStatusActive, CreatedAt: time.Now(),
	})
	engine := newTestRouter(store)

	w := doRequest(t, engine, http.MethodGet, "/api/v1/members?page=1&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	e := decode(t, w)
	assert.True(t, e.Success)

	var page model.PagedResult[*model.Member]
	require.NoError(t, json.Unmarshal(e.Data, &page))
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Alice", page.Data[0].Name)
}

func TestListMembersInvalidStatusIs400(t *testing.T) {
	engine := newTestRouter(memory.NewStore())

	w := doRequest(t, engine, http.MethodGet, "/api/v1/members?status=overdue", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	e := decode(t, w)
	assert.False(t, e.Success)
	require.NotNil(t, e.Error)
	assert.Equal(t, "validation_error", e.Error.Category)
}

func TestGetMemberMalformedIDIs400(t *testing.T) {
	engine := newTestRouter(memory.NewStore())

	w := doRequest(t, engine, http.MethodGet, "/api/v1/members/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMemberUnknownIDIs404(t *testing.T) {
	engine := newTestRouter(memory.NewStore())

	w := doRequest(t, engine, http.MethodGet, "/api/v1/members/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	e := decode(t, w)
	require.NotNil(t, e.Error)
	assert.Equal(t, "not_found", e.Error.Category)
}

func TestUpdateMemberEndpoint(t *testing.T) {
	store := memory.NewStore()
	id := uuid.New()
	store.PutMember(&model.Member{
		ID: id, Name: "Alice", Email: "alice@example.com",
		Status: model.MemberStatusActive, CreatedAt: time.Now(),
	})
	engine := newTestRouter(store)

	w := doRequest(t, engine, http.MethodPatch, "/api/v1/members/"+id.String(), `{"name":"Alice Cooper"}`)
	require.Equal(t, http.StatusOK, w.Code)

	e := decode(t, w)
	var m model.Member
	require.NoError(t, json.Unmarshal(e.Data, &m))
	assert.Equal(t, "Alice Cooper", m.Name)
	assert.Equal(t, "alice@example.com", m.Email)
}

func TestUpdateMemberBadEmailIs400(t *testing.T) {
	store := memory.NewStore()
	id := uuid.New()
	store.PutMember(&model.Member{
		ID: id, Name: "Alice", Email: "alice@example.com",
		Status: model.MemberStatusActive, CreatedAt: time.Now(),
	})
	engine := newTestRouter(store)

	w := doRequest(t, engine, http.MethodPatch, "/api/v1/members/"+id.String(), `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddVehicleEndpoint(t *testing.T) {
	store := memory.NewStore()
	id := uuid.New()
	store.PutMember(&model.Member{
		ID: id, Name: "Alice", Email: "alice@example.com",
		Status: model.MemberStatusActive, CreatedAt: time.Now(),
	})
	engine := newTestRouter(store)

	w := doRequest(t, engine, http.MethodPost, "/api/v1/members/"+id.String()+"/vehicles",
		`{"make":"Tesla","model":"Model 3","year":2023,"licensePlate":"EV-42"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	e := decode(t, w)
	var v model.Vehicle
	require.NoError(t, json.Unmarshal(e.Data, &v))
	assert.Equal(t, id, v.MemberID)
}

func TestAddVehicleRejectsImplausibleYear(t *testing.T) {
	store := memory.NewStore()
	id := uuid.New()
	store.PutMember(&model.Member{
		ID: id, Name: "Alice", Email: "alice@example.com",
		Status: model.MemberStatusActive, CreatedAt: time.Now(),
	})
	engine := newTestRouter(store)

	w := doRequest(t, engine, http.MethodPost, "/api/v1/members/"+id.String()+"/vehicles",
		`{"make":"Ford","model":"T","year":1908,"licensePlate":"OLD-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
