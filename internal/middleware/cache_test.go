package middleware

import (
	"net/http/httptest"
	"testing"
)

func TestCaptureWriterCapsBufferOnOverflow(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 8}

	if _, err := cw.Write([]byte("12345")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cw.Write([]byte("67890")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := rec.Body.String(); got != "1234567890" {
		t.Errorf("client body = %q, want the full response", got)
	}
	if got := cw.buf.String(); got != "12345678" {
		t.Errorf("captured = %q, want the capped prefix", got)
	}
	if !cw.overflowed() {
		t.Error("overflowed() = false, a truncated capture must never be stored")
	}
}

func TestCaptureWriterOverflowAfterExactFit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 4}

	_, _ = cw.Write([]byte("abcd"))
	if cw.overflowed() {
		t.Fatal("a body exactly at the limit is cacheable")
	}
	_, _ = cw.Write([]byte("e"))
	if !cw.overflowed() {
		t.Error("overflowed() = false after writing past the limit")
	}
	if got := cw.buf.String(); got != "abcd" {
		t.Errorf("captured = %q", got)
	}
}

func TestCaptureWriterUnlimited(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200}

	_, _ = cw.Write([]byte("a long enough body to exceed any small cap"))
	if cw.overflowed() {
		t.Error("zero limit must disable the cap")
	}
	if cw.buf.Len() == 0 {
		t.Error("body was not captured")
	}
}
