package ats

import (
	"io"
	"net/http"
	"strings"
)

// fakeTransport routes every request through one handler so adapters can be
// exercised against canned provider payloads without a server.
type fakeTransport struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (t fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.handler(req)
}

func respond(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}
}

func fakeClient(handler func(req *http.Request) (*http.Response, error)) client {
	return client{hc: &http.Client{Transport: fakeTransport{handler: handler}}}
}
