package ticketbot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDispatchReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/dispatch" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Ticketbot-Channel") != "#dev" {
			t.Errorf("expected channel header, got %q", r.Header.Get("X-Ticketbot-Channel"))
		}

		var req DispatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DispatchResponse{ID: "01H", Channel: req.Channel, Reply: "echo " + req.Message})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Dispatch(DispatchRequest{Channel: "#dev", Message: "OPS-1", IsPublic: true})
	if err != nil {
		t.Fatal(err)
	}
	if resp == nil || resp.Reply != "echo OPS-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestDispatchSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Dispatch(DispatchRequest{Message: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if resp != nil {
		t.Fatalf("expected nil response for silence, got %+v", resp)
	}
}

func TestErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"storage error"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Dispatch(DispatchRequest{Message: "jira add OPS"})
	if err == nil || !strings.Contains(err.Error(), "storage error") {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestPatterns(t *testing.T) {
	patterns := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/patterns":
			var req struct{ Prefix string }
			json.NewDecoder(r.Body).Decode(&req)
			created := !patterns[req.Prefix]
			patterns[req.Prefix] = true
			json.NewEncoder(w).Encode(map[string]interface{}{"prefix": req.Prefix, "created": created})
		case r.Method == http.MethodGet && r.URL.Path == "/patterns":
			var list []string
			for p := range patterns {
				list = append(list, p)
			}
			json.NewEncoder(w).Encode(map[string][]string{"patterns": list})
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/patterns/"):
			delete(patterns, strings.TrimPrefix(r.URL.Path, "/patterns/"))
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	created, err := c.AddPattern("OPS")
	if err != nil || !created {
		t.Fatalf("expected created, got %v %v", created, err)
	}
	created, err = c.AddPattern("OPS")
	if err != nil || created {
		t.Fatalf("expected duplicate, got %v %v", created, err)
	}

	list, err := c.ListPatterns()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0] != "OPS" {
		t.Fatalf("expected [OPS], got %v", list)
	}

	if err := c.RemovePattern("OPS"); err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 0 {
		t.Fatalf("expected no patterns, got %v", patterns)
	}
}
