package harness

import (
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var pathParamRegex = regexp.MustCompile(`\{([^{}]+)\}`)

// Request is a fully resolved HTTP request, ready to be passed to a Transport.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// RequestSpec describes a call to one endpoint in endpoint-agnostic terms.
type RequestSpec struct {
	Method       string
	PathTemplate string
	PathParams   map[string]string
	Headers      map[string]string

	// Token is sent as the Authorization header, exactly as given, if it is defined. An
	// undefined token produces an anonymous request.
	Token ldvalue.OptionalString

	// Fields is the request payload.
	Fields FieldMap

	// Schema determines which keys of Fields are allowed and how they are named on the
	// wire. It is required if Fields is non-empty. If Schema is set, the request always
	// has a JSON body, which is an empty object when Fields is empty; if it is nil, the
	// request has no body.
	Schema *FieldSchema
}

// Build resolves a RequestSpec against a base URL.
//
// Every {name} placeholder in the path template must have a value in PathParams, or a
// TemplateResolutionError is returned. If the field map has keys that the schema does
// not recognize, an UnrecognizedFieldError is returned.
func Build(baseURL string, spec RequestSpec) (Request, error) {
	path, err := ResolvePath(spec.PathTemplate, spec.PathParams)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Method: spec.Method,
		URL:    JoinURL(baseURL, path),
		Header: make(http.Header),
	}
	req.Header.Set("Accept", "application/json")

	if spec.Fields.Len() > 0 && spec.Schema == nil {
		return Request{}, &ConfigurationError{Message: "request has fields but no schema to encode them"}
	}
	if spec.Schema != nil {
		body, err := spec.Schema.Encode(spec.Fields)
		if err != nil {
			return Request{}, err
		}
		req.Body = body
		req.Header.Set("Content-Type", "application/json")
	}

	names := make([]string, 0, len(spec.Headers))
	for name := range spec.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		req.Header.Set(name, spec.Headers[name])
	}
	if spec.Token.IsDefined() {
		req.Header.Set("Authorization", spec.Token.StringValue())
	}
	return req, nil
}

// ResolvePath substitutes path parameters into a template such as "/books/{book_id}".
// Values are path-escaped.
func ResolvePath(template string, params map[string]string) (string, error) {
	var missing []string
	resolved := pathParamRegex.ReplaceAllStringFunc(template, func(placeholder string) string {
		name := placeholder[1 : len(placeholder)-1]
		value, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return placeholder
		}
		return url.PathEscape(value)
	})
	if len(missing) > 0 {
		return "", &TemplateResolutionError{Template: template, Missing: missing}
	}
	return resolved, nil
}

// JoinURL appends a path to a base URL with exactly one slash between them. A trailing
// slash on the path is kept, since some services treat "books/" and "books" differently.
func JoinURL(baseURL, path string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
