package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"pocket-squeak/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	// sin DB ni path sqlite: storage en memoria
	ts := httptest.NewServer(router.NewRouter(router.Options{Log: zerolog.Nop()}))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, base, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, base+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

func createPet(t *testing.T, base string, body map[string]any) string {
	t.Helper()
	st, data := doReq(t, base, "POST", "/pets", body)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating pet, got %d body=%s", st, string(data))
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.ID == 0 {
		t.Fatalf("bad create response: %s", string(data))
	}
	return jsonInt(resp.ID)
}

func jsonInt(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func TestHTTP_EndToEnd_DailyRecordFlow(t *testing.T) {
	ts := newTestServer(t)

	petID := createPet(t, ts.URL, map[string]any{
		"name":     "Canela",
		"species":  "rat",
		"gender":   "female",
		"birthday": "2025-01-15",
	})

	// 1) Sin registro aún: 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/records/today", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 before first upsert, got %d", st)
		}
	}

	// 2) Primer upsert del día
	{
		st, body := doReq(t, ts.URL, "PUT", "/pets/"+petID+"/records/today", map[string]any{
			"weight":       350.0,
			"observations": []string{"normal"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 upserting, got %d body=%s", st, string(body))
		}
	}

	// 3) Segundo upsert sin peso: mergea, no pisa el peso
	{
		st, body := doReq(t, ts.URL, "PUT", "/pets/"+petID+"/records/today", map[string]any{
			"observations": []string{"sneeze", "normal"},
			"notes":        "sneezing after cage cleaning",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 on second upsert, got %d body=%s", st, string(body))
		}

		var rec struct {
			Weight       *float64 `json:"weight"`
			Observations []string `json:"observations"`
			Notes        *string  `json:"notes"`
		}
		if err := json.Unmarshal(body, &rec); err != nil {
			t.Fatalf("bad record response: %s", string(body))
		}
		if rec.Weight == nil || *rec.Weight != 350 {
			t.Fatalf("weight must survive patch without weight, got %v", rec.Weight)
		}
		if len(rec.Observations) != 2 {
			t.Fatalf("expected union of 2 observations, got %v", rec.Observations)
		}
	}

	// 4) La historia tiene exactamente un registro para el día
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/records", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing history, got %d", st)
		}
		var recs []json.RawMessage
		if err := json.Unmarshal(body, &recs); err != nil || len(recs) != 1 {
			t.Fatalf("expected exactly 1 record, body=%s", string(body))
		}
	}
}

func TestHTTP_EndToEnd_TrendsInPetList(t *testing.T) {
	ts := newTestServer(t)

	petID := createPet(t, ts.URL, map[string]any{
		"name":     "Bigotes",
		"species":  "hamster",
		"birthday": "2025-06-01",
	})

	// una semana de datos de ejemplo + pesada de hoy en caída
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/records/seed", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 seeding, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "PUT", "/pets/"+petID+"/records/today", map[string]any{
			"weight": 30.0,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 upserting today, got %d", st)
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/pets", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing pets, got %d body=%s", st, string(body))
	}

	var list []struct {
		Name                string   `json:"name"`
		LatestWeight        *float64 `json:"latest_weight"`
		WeightChangePercent *float64 `json:"weight_change_percent"`
		Alert               string   `json:"alert"`
	}
	if err := json.Unmarshal(body, &list); err != nil || len(list) != 1 {
		t.Fatalf("bad pet list: %s", string(body))
	}
	if list[0].LatestWeight == nil || *list[0].LatestWeight != 30 {
		t.Fatalf("expected latest weight 30, got %v", list[0].LatestWeight)
	}
	// 30g contra 40g de ayer: caída bien por debajo del umbral
	if list[0].Alert != "loss_warning" {
		t.Fatalf("expected loss_warning, got %s body=%s", list[0].Alert, string(body))
	}
}

func TestHTTP_EndToEnd_BackupRestoreRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	petID := createPet(t, ts.URL, map[string]any{
		"name":     "Trufa",
		"species":  "guinea_pig",
		"birthday": "2024-11-20",
	})
	doReq(t, ts.URL, "PUT", "/pets/"+petID+"/records/today", map[string]any{"weight": 900.0})

	// snapshot
	st, snapshot := doReq(t, ts.URL, "GET", "/backup", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 downloading backup, got %d", st)
	}

	// se borra todo
	if st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 deleting pet, got %d", st)
	}

	// restore del snapshot crudo
	req, _ := http.NewRequest("POST", ts.URL+"/backup/restore", bytes.NewReader(snapshot))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 restoring, got %d", resp.StatusCode)
	}

	// la mascota volvió con su id original
	st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected restored pet at original id, got %d body=%s", st, string(body))
	}

	// un restore con basura no toca nada
	req, _ = http.NewRequest("POST", ts.URL+"/backup/restore", strings.NewReader(`{"version":"x"}`))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("bad restore: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed snapshot, got %d", resp.StatusCode)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, nil); st != http.StatusOK {
		t.Fatalf("failed restore must not wipe data, got %d", st)
	}
}

func TestHTTP_SpeciesCatalog(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/species", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing species, got %d", st)
	}

	var list []struct {
		Species       string  `json:"species"`
		DisplayName   string  `json:"display_name"`
		DefaultWeight float64 `json:"default_weight"`
	}
	if err := json.Unmarshal(body, &list); err != nil || len(list) != 5 {
		t.Fatalf("bad species catalog: %s", string(body))
	}
	if list[1].Species != "guinea_pig" || list[1].DisplayName != "Guinea Pig" || list[1].DefaultWeight != 900 {
		t.Fatalf("unexpected catalog entry: %+v", list[1])
	}
}

func TestHTTP_EndToEnd_ExportCSV(t *testing.T) {
	ts := newTestServer(t)

	// sin datos: 404
	if st, _ := doReq(t, ts.URL, "GET", "/export", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 exporting empty store")
	}

	petID := createPet(t, ts.URL, map[string]any{
		"name":     "Canela",
		"species":  "rat",
		"birthday": "2025-01-15",
	})
	doReq(t, ts.URL, "PUT", "/pets/"+petID+"/records/today", map[string]any{
		"weight": 350.0,
		"notes":  "=SUM(A1:A10)",
	})

	st, body := doReq(t, ts.URL, "GET", "/export", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 exporting, got %d body=%s", st, string(body))
	}

	csv := string(body)
	if !strings.HasPrefix(csv, "Date,Pet Name,Species,Weight,Observations,Notes") {
		t.Fatalf("unexpected CSV header: %s", csv)
	}
	// la fórmula viaja neutralizada
	if !strings.Contains(csv, `"'=SUM(A1:A10)"`) {
		t.Fatalf("expected escaped formula in CSV, got: %s", csv)
	}

	// health y métricas siguen arriba
	if st, _ := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK {
		t.Fatalf("health endpoint down")
	}
	if st, _ := doReq(t, ts.URL, "GET", "/metrics", nil); st != http.StatusOK {
		t.Fatalf("metrics endpoint down")
	}
}
