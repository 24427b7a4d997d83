package rest

import (
	"encoding/base64"
	"net/http"
)

// Header names set by the built-in producers.
const (
	HeaderSubscriptionKey = "Ocp-Apim-Subscription-Key"
	HeaderFunctionsKey    = "X-Functions-Key"
	HeaderAuthorization   = "Authorization"
	HeaderContentType     = "Content-Type"
	HeaderAccept          = "Accept"
	HeaderUserAgent       = "User-Agent"

	ContentTypeJSON = "application/json"
)

// HeaderProducer derives request headers from the operation parameters.
// Producers must be pure.
type HeaderProducer[P any] func(params P) map[string]string

// ComposeHeaders returns the union of the producers' headers, keyed by
// canonical header name. On a name defined by more than one producer, in
// any letter case, the later producer wins. Nil producers are skipped.
func ComposeHeaders[P any](producers ...HeaderProducer[P]) HeaderProducer[P] {
	return func(params P) map[string]string {
		headers := make(map[string]string)
		for _, p := range producers {
			if p == nil {
				continue
			}
			copyCanonical(headers, p(params))
		}
		return headers
	}
}

// StaticHeaders produces the same headers for every call, keyed by
// canonical header name.
func StaticHeaders[P any](headers map[string]string) HeaderProducer[P] {
	fixed := make(map[string]string, len(headers))
	copyCanonical(fixed, headers)
	return func(P) map[string]string {
		out := make(map[string]string, len(fixed))
		copyCanonical(out, fixed)
		return out
	}
}

func copyCanonical(dst, src map[string]string) {
	for name, value := range src {
		dst[http.CanonicalHeaderKey(name)] = value
	}
}

func single[P any](name, value string) HeaderProducer[P] {
	return func(P) map[string]string {
		return map[string]string{name: value}
	}
}

// SubscriptionKeyHeader sends the API-management subscription key.
func SubscriptionKeyHeader[P any](key string) HeaderProducer[P] {
	return single[P](HeaderSubscriptionKey, key)
}

// FunctionsKeyHeader sends a function-app access key.
func FunctionsKeyHeader[P any](key string) HeaderProducer[P] {
	return single[P](HeaderFunctionsKey, key)
}

// BasicAuthHeader sends HTTP Basic credentials built from account and token.
func BasicAuthHeader[P any](account, token string) HeaderProducer[P] {
	encoded := base64.StdEncoding.EncodeToString([]byte(account + ":" + token))
	return single[P](HeaderAuthorization, "Basic "+encoded)
}

// BearerHeader sends a bearer token.
func BearerHeader[P any](token string) HeaderProducer[P] {
	return single[P](HeaderAuthorization, "Bearer "+token)
}

// JSONContentTypeHeader marks the request body as JSON.
func JSONContentTypeHeader[P any]() HeaderProducer[P] {
	return single[P](HeaderContentType, ContentTypeJSON)
}

// AcceptJSONHeader asks for a JSON response.
func AcceptJSONHeader[P any]() HeaderProducer[P] {
	return single[P](HeaderAccept, ContentTypeJSON)
}

// UserAgentHeader sets the User-Agent.
func UserAgentHeader[P any](ua string) HeaderProducer[P] {
	return single[P](HeaderUserAgent, ua)
}
