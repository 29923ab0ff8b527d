package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/model"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseRequestQueryRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bogus status", "status=BOGUS"},
		{"bogus status among valid ones", "status=PENDING,NOPE"},
		{"bogus priority", "priority=URGENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRequestQuery(queryContext(t, tt.query)); err == nil {
				t.Errorf("parseRequestQuery(%q) accepted an unknown value", tt.query)
			}
		})
	}
}

func TestParseRequestQueryAcceptsKnownValues(t *testing.T) {
	opts, err := parseRequestQuery(queryContext(t, "status=pending,approved&priority=high"))
	if err != nil {
		t.Fatalf("parseRequestQuery() error: %v", err)
	}
	if len(opts.Statuses) != 2 || opts.Statuses[0] != model.RequestStatusPending {
		t.Errorf("unexpected statuses: %v", opts.Statuses)
	}
	if len(opts.Priorities) != 1 || opts.Priorities[0] != model.RequestPriorityHigh {
		t.Errorf("unexpected priorities: %v", opts.Priorities)
	}
}

func TestParseTripQueryRejectsUnknownStatus(t *testing.T) {
	if _, err := parseTripQuery(queryContext(t, "status=FLYING")); err == nil {
		t.Error("parseTripQuery() accepted an unknown status")
	}
}

func TestParseMaintenanceQueryRejectsUnknownValues(t *testing.T) {
	if _, err := parseMaintenanceQuery(queryContext(t, "status=BROKEN")); err == nil {
		t.Error("parseMaintenanceQuery() accepted an unknown status")
	}
	if _, err := parseMaintenanceQuery(queryContext(t, "type=COSMETIC")); err == nil {
		t.Error("parseMaintenanceQuery() accepted an unknown type")
	}
}
