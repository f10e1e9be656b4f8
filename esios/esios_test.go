package esios

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New("test-token", Options{BaseUrl: srv.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return client, srv
}

func TestNewWithoutToken(t *testing.T) {
	_, err := New("", Options{})
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotToken, gotAccept string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-api-key")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"indicator": {"id": 1013, "name": "PVPC", "values": []}}`))
	})

	if _, err := client.IndicatorValues(context.Background(), 1013, Query{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotToken != "test-token" {
		t.Errorf("expected token header, got %q", gotToken)
	}
	if gotAccept != acceptHeader {
		t.Errorf("unexpected accept header %q", gotAccept)
	}
}

func TestValidationFailsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.IndicatorValues(context.Background(), 1013, Query{GroupBy: "decade"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no network call for invalid query, got %d", calls.Load())
	}
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrAuthentication},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrAuthentication},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrUpstream},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrUpstream},
		{name: "too many requests", status: http.StatusTooManyRequests, wantErr: ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			table, err := client.IndicatorValues(context.Background(), 1013, Query{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if table != nil {
				t.Error("expected no table on error")
			}
		})
	}
}

func TestNonJSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	})

	_, err := client.IndicatorValues(context.Background(), 1013, Query{})
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream for non-JSON body, got %v", err)
	}
}

func TestConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections

	client, err := New("test-token", Options{BaseUrl: srv.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	_, err = client.IndicatorValues(context.Background(), 1013, Query{})
	if !errors.Is(err, ErrConnectivity) {
		t.Errorf("expected ErrConnectivity, got %v", err)
	}
}

func TestTimeoutIsConnectivityError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	client.client.Timeout = 50 * time.Millisecond

	_, err := client.IndicatorValues(context.Background(), 1013, Query{})
	if !errors.Is(err, ErrConnectivity) {
		t.Errorf("expected ErrConnectivity on timeout, got %v", err)
	}
}

const hydroBody = `{"indicator": {"id": 1, "name": "Hidráulica UGH", "short_name": "hydro", "values": [
	{"value": 120.5, "datetime_utc": "2025-01-02T00:00:00Z", "geo_id": 8741, "geo_name": "Península"},
	{"value": 98.0, "datetime_utc": "2025-01-01T00:00:00Z", "geo_id": 8741, "geo_name": "Península"}
]}}`

func TestConvenienceMatchesGeneric(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indicators/1" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(hydroBody))
	})

	q := Query{
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 1, 7),
		GroupBy:   GroupByDay,
	}

	fromConvenience, err := client.HydroGeneration(context.Background(), q)
	if err != nil {
		t.Fatalf("convenience call: %v", err)
	}
	fromGeneric, err := client.IndicatorValues(context.Background(), IndicatorHydroPBFUGH, q)
	if err != nil {
		t.Fatalf("generic call: %v", err)
	}

	if !reflect.DeepEqual(fromConvenience, fromGeneric) {
		t.Errorf("convenience and generic tables differ:\n%+v\n%+v", fromConvenience, fromGeneric)
	}
}

func TestTableOrderFollowsResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(hydroBody))
	})

	table, err := client.IndicatorValues(context.Background(), 1, Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table))
	}
	// Response order is preserved as-is, even when not chronological.
	if !table[0].Time.After(table[1].Time) {
		t.Error("expected response order, not chronological order")
	}

	table.SortByTime()
	if !table[0].Time.Before(table[1].Time) {
		t.Error("expected chronological order after SortByTime")
	}
}

func TestIndicatorsCatalog(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indicators" {
			http.NotFound(w, r)
			return
		}
		if r.URL.RawQuery != "" {
			t.Errorf("catalog request must carry no filters, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"indicators": [
			{"id": 1013, "name": "PVPC", "short_name": "pvpc", "magnitud": [{"name": "€/MWh", "id": 23}]},
			{"id": 1293, "name": "Demanda real", "short_name": "demanda"}
		]}`))
	})

	catalog, err := client.Indicators(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", len(catalog))
	}
	if catalog[0].Id != 1013 || catalog[0].Unit != "€/MWh" {
		t.Errorf("unexpected first entry %+v", catalog[0])
	}
	if catalog[1].Unit != "" {
		t.Errorf("expected empty unit when magnitud is absent, got %q", catalog[1].Unit)
	}
}

func TestIndicatorMetadata(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"indicator": {"id": 1293, "name": "Demanda real", "short_name": "demanda", "values": []}}`))
	})

	ind, err := client.Indicator(context.Background(), 1293)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ind.Id != 1293 || ind.ShortName != "demanda" {
		t.Errorf("unexpected indicator %+v", ind)
	}
}
