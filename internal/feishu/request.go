package feishu

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one Open API call relative to the base URL.
//
// At most one of JSON and Form is set. RequiresAuth attaches the tenant
// access token; only the token exchange itself leaves it false.
type Request struct {
	Method       string
	Path         string
	Query        url.Values
	JSON         any
	Form         url.Values
	RequiresAuth bool
}

// JSONRequest builds an authenticated request with a JSON body.
func JSONRequest(method, path string, body any) *Request {
	return &Request{Method: method, Path: path, JSON: body, RequiresAuth: true}
}

// QueryRequest builds an authenticated request with query parameters only.
func QueryRequest(method, path string, query url.Values) *Request {
	return &Request{Method: method, Path: path, Query: query, RequiresAuth: true}
}

// FormRequest builds an authenticated request with a url-encoded form body.
func FormRequest(method, path string, form url.Values) *Request {
	return &Request{Method: method, Path: path, Form: form, RequiresAuth: true}
}

// Path joins escaped path segments onto a prefix.
//
//	Path("/bitable/v1/apps", appToken, "tables") // /bitable/v1/apps/<app>/tables
func Path(prefix string, segments ...string) string {
	var b strings.Builder

	b.WriteString(strings.TrimSuffix(prefix, "/"))

	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}

	return b.String()
}

// Envelope is the common response shape of the Open API.
//
// Token exchange responses carry tenant_access_token and expire at the top
// level instead of inside data.
type Envelope struct {
	Code              int             `json:"code"`
	Msg               string          `json:"msg"`
	Data              json.RawMessage `json:"data,omitempty"`
	TenantAccessToken string          `json:"tenant_access_token,omitempty"`
	Expire            int             `json:"expire,omitempty"`
}

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeForm = "application/x-www-form-urlencoded; charset=utf-8"
)

func hasBody(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}
