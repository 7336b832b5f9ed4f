package preferences

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areaviz/areaviz/backend-go/internal/auth"
)

type memStore struct {
	mu    sync.Mutex
	state map[string]State
}

func newMemStore() *memStore { return &memStore{state: map[string]State{}} }

func (m *memStore) GetPreferences(_ context.Context, accountID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state[accountID]
	if !ok {
		return State{}, ErrNotFound
	}
	return s, nil
}

func (m *memStore) PutPreferences(_ context.Context, accountID string, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[accountID] = s
	return nil
}

func TestPutNormalizes(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	got, err := svc.Put(ctx, "acct_1", State{
		TabletWidth: 152, TabletHeight: 95,
		AreaWidth: 200, AreaHeight: 50,
		OffsetX: 0, OffsetY: 95,
		Radius: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, 152.0, got.AreaWidth)
	assert.Equal(t, 50.0, got.AreaHeight)
	assert.Equal(t, 76.0, got.OffsetX)
	assert.Equal(t, 70.0, got.OffsetY)
	assert.Equal(t, 100.0, got.Radius)
	assert.InDelta(t, 3.04, got.Ratio, 1e-9)

	stored, err := svc.Get(ctx, "acct_1")
	require.NoError(t, err)
	assert.Equal(t, *got, *stored)
}

func TestPutRejectsSmallTablet(t *testing.T) {
	svc := NewService(newMemStore())
	_, err := svc.Put(context.Background(), "acct_1", State{TabletWidth: 5, TabletHeight: 100})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGetMissing(t *testing.T) {
	svc := NewService(newMemStore())
	_, err := svc.Get(context.Background(), "acct_none")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHandler(t *testing.T) {
	h := NewHandler(NewService(newMemStore()))

	do := func(method, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/preferences", strings.NewReader(body))
		req = req.WithContext(auth.WithAccountID(req.Context(), "acct_1"))
		rec := httptest.NewRecorder()
		if method == http.MethodGet {
			h.Get(rec, req)
		} else {
			h.Put(rec, req)
		}
		return rec
	}

	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPut, "{").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPut, `{"tabletWidth":1,"tabletHeight":1}`).Code)

	rec := do(http.MethodPut, `{"tabletWidth":100,"tabletHeight":60,"areaWidth":40,"areaHeight":30,"offsetX":50,"offsetY":30,"ratioLocked":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.True(t, got.RatioLocked)
	assert.Equal(t, 40.0, got.AreaWidth)
	assert.InDelta(t, 40.0/30.0, got.Ratio, 1e-9)
}
