package purecloud

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyListing answers list endpoints the test does not care about.
func emptyListing(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, entityListing[any]{Entities: []any{}, PageCount: 0})
}

func TestRealClient_CleanupByPrefix(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	var mu sync.Mutex
	var deleted []string
	record := func(kind string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			deleted = append(deleted, kind+":"+r.PathValue("id"))
			mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		}
	}

	ts.handleFunc("GET /api/v2/integrations", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, entityListing[*Integration]{Entities: []*Integration{
			{ID: "int-actions", Name: "APP_Data Actions", IntegrationType: &DomainRef{ID: TypeDataActions}},
			{ID: "int-app", Name: "APP_App", IntegrationType: &DomainRef{ID: TypeClientApp}},
			{ID: "int-foreign", Name: "Someone Else", IntegrationType: &DomainRef{ID: TypeClientApp}},
		}, PageCount: 1})
	})
	ts.handleFunc("GET /api/v2/integrations/actions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "int-actions", r.URL.Query().Get("integrationId"))
		jsonResponse(w, http.StatusOK, entityListing[*DataAction]{Entities: []*DataAction{
			{ID: "act-1", Name: "Get Queue Members", IntegrationID: "int-actions"},
		}, PageCount: 1})
	})
	ts.handleFunc("GET /api/v2/integrations/actions/{id}", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, &DataAction{ID: r.PathValue("id")})
	})
	ts.handleFunc("DELETE /api/v2/integrations/actions/{id}", record("action"))
	ts.handleFunc("GET /api/v2/integrations/{id}", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, &Integration{ID: r.PathValue("id")})
	})
	ts.handleFunc("DELETE /api/v2/integrations/{id}", record("integration"))

	ts.handleFunc("GET /api/v2/groups", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, entityListing[*Group]{Entities: []*Group{
			{ID: "grp-1", Name: "APP_Supervisors"},
			{ID: "grp-2", Name: "Supervisors"},
		}, PageCount: 1})
	})
	ts.handleFunc("GET /api/v2/groups/{id}", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, &Group{ID: r.PathValue("id")})
	})
	ts.handleFunc("DELETE /api/v2/groups/{id}", record("group"))

	ts.handleFunc("GET /api/v2/authorization/roles", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, entityListing[*Role]{Entities: []*Role{{ID: "role-1", Name: "APP_Role"}}, PageCount: 1})
	})
	ts.handleFunc("GET /api/v2/authorization/roles/{id}", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusNotFound, map[string]any{"status": 404, "message": "gone"})
	})

	ts.handleFunc("GET /api/v2/integrations/credentials", emptyListing)
	ts.handleFunc("GET /api/v2/telephony/providers/edges/trunkbasesettings", emptyListing)
	ts.handleFunc("GET /api/v2/flows/datatables", emptyListing)
	ts.handleFunc("GET /api/v2/oauth/clients", emptyListing)

	require.NoError(t, ts.realClient().CleanupByPrefix(context.Background(), "APP_"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"action:act-1",
		"integration:int-actions",
		"integration:int-app",
		"group:grp-1",
	}, deleted, "role already gone, foreign resources untouched")
}

func TestRealClient_CleanupByPrefix_CollectsErrors(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.handleFunc("GET /api/v2/integrations", emptyListing)
	ts.handleFunc("GET /api/v2/integrations/credentials", emptyListing)
	ts.handleFunc("GET /api/v2/telephony/providers/edges/trunkbasesettings", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusForbidden, map[string]any{"status": 403, "message": "missing telephony:plugin:all"})
	})
	ts.handleFunc("GET /api/v2/flows/datatables", emptyListing)
	ts.handleFunc("GET /api/v2/oauth/clients", emptyListing)
	ts.handleFunc("GET /api/v2/groups", emptyListing)
	ts.handleFunc("GET /api/v2/authorization/roles", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, entityListing[*Role]{Entities: []*Role{{ID: "role-1", Name: "APP_Role"}}, PageCount: 1})
	})
	ts.handleFunc("GET /api/v2/authorization/roles/{id}", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, &Role{ID: r.PathValue("id"), Name: "APP_Role"})
	})
	ts.handleFunc("DELETE /api/v2/authorization/roles/{id}", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusBadRequest, map[string]any{"status": 400, "message": "role is assigned"})
	})

	err := ts.realClient().CleanupByPrefix(context.Background(), "APP_")
	require.Error(t, err)

	var ce *CleanupError
	require.ErrorAs(t, err, &ce)
	assert.Len(t, ce.Errors, 2)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "role is assigned")
}

func TestRealClient_CleanupByPrefix_EmptyPrefix(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	err := ts.realClient().CleanupByPrefix(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyPrefix)
}
