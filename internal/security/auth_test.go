package security

import (
	"net/http/httptest"
	"testing"
)

func TestAuthorize(t *testing.T) {
	auth := BearerAuth{Enabled: true, Token: "secret"}

	r := httptest.NewRequest("GET", "/v1/events", nil)
	if auth.Authorize(r) {
		t.Fatal("missing header must be rejected")
	}

	r.Header.Set("Authorization", "Bearer secret")
	if !auth.Authorize(r) {
		t.Fatal("valid token rejected")
	}

	r.Header.Set("Authorization", "Bearer wrong!")
	if auth.Authorize(r) {
		t.Fatal("wrong token accepted")
	}

	r.Header.Set("Authorization", "Basic secret")
	if auth.Authorize(r) {
		t.Fatal("non-bearer scheme accepted")
	}
}

func TestDisabledAuthAdmitsEverything(t *testing.T) {
	auth := BearerAuth{Enabled: false}
	r := httptest.NewRequest("GET", "/v1/events", nil)
	if !auth.Authorize(r) {
		t.Fatal("disabled auth must admit")
	}
}
