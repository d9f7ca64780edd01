package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// routerFixture builds the full HTTP surface over fake upstreams.
func routerFixture(t *testing.T, tasksHandler http.HandlerFunc) (*gin.Engine, *int) {
	t.Helper()
	loc := testLocation(t)

	clickupSrv := httptest.NewServer(tasksHandler)
	t.Cleanup(clickupSrv.Close)

	posts := new(int)
	discordSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*posts++
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(discordSrv.Close)

	cfg := Config{
		BotName:            "Leave Bot",
		TeamName:           "Acme",
		Timezone:           "Asia/Colombo",
		Location:           loc,
		ClickUpWorkspaceID: "ws1",
	}
	clickup := testClickUpClient(clickupSrv)
	svc := NewLeaveService(
		cfg,
		clickup,
		&DiscordWebhook{URL: discordSrv.URL, Username: cfg.BotName, client: discordSrv.Client()},
		NewSlackMirror(cfg),
		NewMemoryNotifiedStore(),
	)
	svc.now = func() time.Time { return fixedNow(loc) }
	return NewRouter(cfg, svc, clickup), posts
}

func doRequest(t *testing.T, r *gin.Engine, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding %s response: %v\n%s", path, err, w.Body.String())
	}
	return w.Code, body
}

func TestHealthAndPing(t *testing.T) {
	r, _ := routerFixture(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"tasks":[]}`)
	})

	code, body := doRequest(t, r, "/health")
	if code != http.StatusOK || body["status"] != "OK" {
		t.Errorf("/health = %d %v", code, body)
	}

	code, body = doRequest(t, r, "/ping")
	if code != http.StatusOK || body["status"] != "AWAKE" {
		t.Errorf("/ping = %d %v", code, body)
	}
}

func TestDailySummaryRouteSkipsWhenEmpty(t *testing.T) {
	r, posts := routerFixture(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"tasks":[]}`)
	})

	code, body := doRequest(t, r, "/test-daily-summary")
	if code != http.StatusOK {
		t.Fatalf("status = %d, body %v", code, body)
	}
	if body["skipped"] != true {
		t.Errorf("skipped = %v, want true", body["skipped"])
	}
	if *posts != 0 {
		t.Errorf("posts = %d, want 0", *posts)
	}
}

func TestDailySummaryRouteRejectsBadDate(t *testing.T) {
	r, _ := routerFixture(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"tasks":[]}`)
	})

	code, body := doRequest(t, r, "/test-daily-summary?date=2024-02-30")
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
	if body["success"] != false {
		t.Errorf("body = %v, want success:false", body)
	}
}

func TestWeeklySummaryRouteSends(t *testing.T) {
	r, posts := routerFixture(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"tasks":[]}`)
	})

	code, body := doRequest(t, r, "/test-weekly-summary")
	if code != http.StatusOK {
		t.Fatalf("status = %d, body %v", code, body)
	}
	if body["weekLabel"] != "Mar 11, 2024 - Mar 15, 2024" {
		t.Errorf("weekLabel = %v", body["weekLabel"])
	}
	if *posts != 1 {
		t.Errorf("posts = %d, the weekly summary always sends", *posts)
	}
}

func TestCheckLeaveOnDateRoute(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Colombo")
	due := time.Date(2024, time.March, 20, 0, 0, 0, 0, loc)
	r, posts := routerFixture(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"tasks":[%s]}`, taskJSON("t1", "Alice", "123", due, due))
	})

	code, body := doRequest(t, r, "/check-leave-on-date/2024-03-20")
	if code != http.StatusOK {
		t.Fatalf("status = %d, body %v", code, body)
	}
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
	if *posts != 0 {
		t.Errorf("posts = %d, the query route must not send", *posts)
	}
}

func TestUpstreamFailureMapsToBadGateway(t *testing.T) {
	r, _ := routerFixture(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})

	code, _ := doRequest(t, r, "/check-leave-on-date/2024-03-20")
	if code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", code)
	}
}

func TestUnconfiguredServiceMapsToServiceUnavailable(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Colombo")
	cfg := Config{Timezone: "Asia/Colombo", Location: loc}
	clickup := &ClickUpClient{client: http.DefaultClient}
	svc := NewLeaveService(cfg, clickup, &DiscordWebhook{client: http.DefaultClient}, NewSlackMirror(cfg), NewMemoryNotifiedStore())
	r := NewRouter(cfg, svc, clickup)

	code, _ := doRequest(t, r, "/test-daily-summary")
	if code != http.StatusServiceUnavailable {
		t.Errorf("/test-daily-summary = %d, want 503", code)
	}
	// No workspace id configured either.
	code, _ = doRequest(t, r, "/find-lists")
	if code != http.StatusServiceUnavailable {
		t.Errorf("/find-lists = %d, want 503", code)
	}
}

func TestSquadNextWeekPreview(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Colombo")
	due := time.Date(2024, time.March, 20, 0, 0, 0, 0, loc)
	r, posts := routerFixture(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"tasks":[%s]}`, taskJSON("s1", "Phoenix", "456", due, due))
	})

	code, body := doRequest(t, r, "/squad-next-week?weeksAhead=0")
	if code != http.StatusOK {
		t.Fatalf("status = %d, body %v", code, body)
	}
	if body["weeksAhead"] != float64(1) {
		t.Errorf("weeksAhead = %v, want floor of 1", body["weeksAhead"])
	}
	if body["count"] != float64(1) {
		t.Errorf("count = %v", body["count"])
	}
	if *posts != 0 {
		t.Errorf("posts = %d, the preview must not send", *posts)
	}
}

func TestFindListsRoute(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/team/ws1/space", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"spaces":[{"id":"s1","name":"People"}]}`)
	})
	mux.HandleFunc("/space/s1/list", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"lists":[{"id":"l1","name":"Leave Requests"}]}`)
	})
	mux.HandleFunc("/space/s1/folder", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"folders":[]}`)
	})
	r, _ := routerFixture(t, mux.ServeHTTP)

	code, body := doRequest(t, r, "/find-lists")
	if code != http.StatusOK {
		t.Fatalf("status = %d, body %v", code, body)
	}
	lists, ok := body["lists"].([]any)
	if !ok || len(lists) != 1 {
		t.Errorf("lists = %v", body["lists"])
	}
}

func TestDebugTimezoneRoute(t *testing.T) {
	r, _ := routerFixture(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"tasks":[]}`)
	})

	code, body := doRequest(t, r, "/debug-timezone")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["timezone"] != "Asia/Colombo" {
		t.Errorf("timezone = %v", body["timezone"])
	}
}
