package utils

import (
	"fmt"
	"net/http"
)

// AbsoluteURI builds an absolute URI for a resource path from the inbound
// request's scheme and host. Used for Location headers and the hypermedia
// URIs on entities (bestellungenUri, kundeUri).
func AbsoluteURI(r *http.Request, format string, args ...interface{}) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, fmt.Sprintf(format, args...))
}
