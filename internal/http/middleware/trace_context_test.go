package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/gradecalc/internal/platform/ctxutil"
)

func traceEngine(pre ...gin.HandlerFunc) (*gin.Engine, **ctxutil.TraceData) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(pre...)
	r.Use(AttachTraceContext())
	seen := new(*ctxutil.TraceData)
	r.GET("/x", func(c *gin.Context) {
		*seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r, seen
}

func TestAttachTraceContextRequestIDs(t *testing.T) {
	cases := []struct {
		name   string
		header string
		keep   bool
	}{
		{"client id kept", "req-1.a_B", true},
		{"missing id generated", "", false},
		{"unsafe id replaced", "bad id;forged=1", false},
		{"overlong id replaced", strings.Repeat("a", maxRequestIDLen+1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, seen := traceEngine()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set(headerRequestID, tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			td := *seen
			if td == nil || td.RequestID == "" {
				t.Fatalf("trace data=%+v", td)
			}
			if tc.keep != (td.RequestID == tc.header) {
				t.Fatalf("request id=%q header=%q keep=%v", td.RequestID, tc.header, tc.keep)
			}
			if td.TraceID != td.RequestID {
				t.Fatalf("without a span the trace id should be the request id: %+v", td)
			}
			if rec.Header().Get(headerRequestID) != td.RequestID || rec.Header().Get(headerTraceID) != td.TraceID {
				t.Fatalf("headers=%v", rec.Header())
			}
		})
	}
}

func TestAttachTraceContextUsesSpanTraceID(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	withSpan := func(c *gin.Context) {
		c.Request = c.Request.WithContext(trace.ContextWithSpanContext(c.Request.Context(), sc))
		c.Next()
	}

	r, seen := traceEngine(withSpan)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	td := *seen
	if td == nil || td.TraceID != traceID.String() || td.RequestID != "req-1" {
		t.Fatalf("trace data=%+v", td)
	}
}

func TestLimitBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LimitBody(8))
	r.POST("/x", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"message":"far too long"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status=%d", rec.Code)
	}
}
