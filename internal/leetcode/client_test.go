package leetcode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return NewClient(srv.URL, loc, zap.NewNop())
}

func TestHasSubmittedToday_Match(t *testing.T) {
	now := time.Now().Unix()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":{"recentSubmissionList":[
			{"timestamp":"%d","statusDisplay":"Accepted","title":"Two Sum","lang":"go"}
		]}}`, now)
	})
	if !c.HasSubmittedToday(context.Background(), "alice") {
		t.Fatal("want submitted=true for a submission just now")
	}
}

func TestHasSubmittedToday_OldSubmissionsOnly(t *testing.T) {
	old := time.Now().AddDate(0, 0, -3).Unix()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":{"recentSubmissionList":[
			{"timestamp":"%d","statusDisplay":"Accepted","title":"Two Sum","lang":"go"}
		]}}`, old)
	})
	if c.HasSubmittedToday(context.Background(), "alice") {
		t.Fatal("want submitted=false for a 3-day-old submission")
	}
}

func TestHasSubmittedToday_FailSoft(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non-200": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data": nope`)
		},
		"graphql errors": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"errors":[{"message":"user not found"}]}`)
		},
		"empty list": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":{"recentSubmissionList":[]}}`)
		},
		"bad timestamp": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":{"recentSubmissionList":[{"timestamp":"yesterday"}]}}`)
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, handler)
			if c.HasSubmittedToday(context.Background(), "alice") {
				t.Fatal("want submitted=false")
			}
		})
	}
}

func TestHasSubmittedToday_Unreachable(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	c := NewClient("http://127.0.0.1:1", loc, zap.NewNop())
	if c.HasSubmittedToday(context.Background(), "alice") {
		t.Fatal("want submitted=false when endpoint is unreachable")
	}
}

func TestValidateUsername(t *testing.T) {
	found := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"matchedUser":{"username":"alice","profile":{"realName":"Alice"}}}}`)
	})
	if !found.ValidateUsername(context.Background(), "alice") {
		t.Fatal("want valid=true for matched user")
	}

	missing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"matchedUser":null}}`)
	})
	if missing.ValidateUsername(context.Background(), "ghost") {
		t.Fatal("want valid=false for null matchedUser")
	}
}
