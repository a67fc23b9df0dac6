package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-agenda-server/internal/models"
)

func TestAPIClientEndpoints(t *testing.T) {
	var gotPaths []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /citas", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, "GET /citas")
		json.NewEncoder(w).Encode([]models.Appointment{{ID: "r1", Title: "Consulta"}})
	})
	mux.HandleFunc("POST /citas/agregar", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, "POST /citas/agregar")
		var cita models.Appointment
		if err := json.NewDecoder(r.Body).Decode(&cita); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		cita.ID = "r2"
		json.NewEncoder(w).Encode(cita)
	})
	mux.HandleFunc("PUT /citas/r1", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, "PUT /citas/r1")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("DELETE /citas/r1", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, "DELETE /citas/r1")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /citas", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, "POST /citas")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, "GET /status")
		json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	ctx := context.Background()
	client := NewAPIClient(server.URL, 5*time.Second)

	citas, err := client.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(citas) != 1 || citas[0].ID != "r1" {
		t.Errorf("List = %+v", citas)
	}

	created, err := client.Create(ctx, models.Appointment{Title: "Nueva"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "r2" || created.Title != "Nueva" {
		t.Errorf("Create = %+v", created)
	}

	if err := client.Update(ctx, "r1", models.Appointment{ID: "r1"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := client.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := client.Replace(ctx, nil); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := client.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	want := []string{"GET /citas", "POST /citas/agregar", "PUT /citas/r1", "DELETE /citas/r1", "POST /citas", "GET /status"}
	if len(gotPaths) != len(want) {
		t.Fatalf("paths %v, want %v", gotPaths, want)
	}
	for i := range want {
		if gotPaths[i] != want[i] {
			t.Errorf("call %d hit %q, want %q", i, gotPaths[i], want[i])
		}
	}
}

func TestAPIClientNon2xxIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, 5*time.Second)
	if _, err := client.List(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestAPIClientPingRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "DEGRADED"})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, 5*time.Second)
	if err := client.Ping(context.Background()); err == nil {
		t.Error("expected error for non-OK status")
	}
}
