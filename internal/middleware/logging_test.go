package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggerPassesThroughResponse(t *testing.T) {
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok"}`))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/posts", nil))

	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rr.Code)
	}
	if rr.Body.String() != `{"message":"ok"}` {
		t.Errorf("body: got %q", rr.Body.String())
	}
}

func TestResponseWriterCapturesStatusAndSize(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	rw.Write([]byte("abc"))
	rw.Write([]byte("de"))
	if rw.statusCode != http.StatusOK {
		t.Errorf("implicit status: got %d, want 200", rw.statusCode)
	}
	if rw.bytes != 5 {
		t.Errorf("bytes: got %d, want 5", rw.bytes)
	}

	rw = &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)
	if rw.statusCode != http.StatusNotFound {
		t.Errorf("first status must win: got %d, want 404", rw.statusCode)
	}
}
