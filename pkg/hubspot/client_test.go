package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListCompaniesPagination(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		n := atomic.AddInt32(&hits, 1)
		if n == 1 {
			assert.Empty(t, r.URL.Query().Get("after"))
			fmt.Fprint(w, `{"results":[{"id":"1","properties":{"name":"Acme"}},{"id":"2","properties":{"name":"Globex"}}],"paging":{"next":{"after":"cursor-2"}}}`)
			return
		}
		assert.Equal(t, "cursor-2", r.URL.Query().Get("after"))
		fmt.Fprint(w, `{"results":[{"id":"3","properties":{"name":"Initech"}}]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	companies, err := c.ListCompanies(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []Company{
		{ID: "1", Name: "Acme"},
		{ID: "2", Name: "Globex"},
		{ID: "3", Name: "Initech"},
	}, companies)
	assert.Equal(t, int32(2), hits)
}

func TestCreateNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crm/v3/objects/notes", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Properties   map[string]string `json:"properties"`
			Associations []struct {
				To struct {
					ID string `json:"id"`
				} `json:"to"`
				Types []struct {
					AssociationTypeID int `json:"associationTypeId"`
				} `json:"types"`
			} `json:"associations"`
		}
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "Summary body", payload.Properties["hs_note_body"])
		assert.NotEmpty(t, payload.Properties["hs_timestamp"])
		assert.Equal(t, "hs-42", payload.Associations[0].To.ID)
		assert.Equal(t, 190, payload.Associations[0].Types[0].AssociationTypeID)

		fmt.Fprint(w, `{"id":"note-77"}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	noteID, err := c.CreateNote(context.Background(), "hs-42", "Summary body")

	assert.NoError(t, err)
	assert.Equal(t, "note-77", noteID)
}

func TestRateLimitRetriesOnce(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"results":[{"id":"1","properties":{"name":"Acme"}}]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	companies, err := c.ListCompanies(context.Background())

	assert.NoError(t, err)
	assert.Len(t, companies, 1)
	assert.Equal(t, int32(2), hits)
}

func TestRateLimitPersistsAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "slow down")
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	_, err := c.CreateNote(context.Background(), "hs-1", "body")

	var rateErr *RateLimitError
	assert.ErrorAs(t, err, &rateErr)
	assert.Contains(t, rateErr.Error(), "slow down")
}

func TestAPIErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"missing scope"}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("bad-token", srv.URL)
	_, err := c.ListCompanies(context.Background())

	assert.ErrorContains(t, err, "403")
	assert.ErrorContains(t, err, "missing scope")
}
