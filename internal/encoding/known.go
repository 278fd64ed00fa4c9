package encoding

import (
	"strings"

	"github.com/oesand/ember/specs"
)

// Preferred lists the supported encodings in negotiation order.
var Preferred = []string{
	specs.ContentEncodingGzip,
	specs.ContentEncodingBrotli,
	specs.ContentEncodingDeflate,
}

func IsKnownEncoding(contentEncoding string) bool {
	switch contentEncoding {
	case specs.ContentEncodingGzip, specs.ContentEncodingDeflate, specs.ContentEncodingBrotli:
		return true
	}
	return false
}

// Accepts reports whether the accept-encoding value advertises contentEncoding.
func Accepts(acceptEncoding, contentEncoding string) bool {
	if acceptEncoding == "" || contentEncoding == "" {
		return false
	}
	for _, item := range strings.Split(acceptEncoding, ",") {
		token, params, _ := strings.Cut(item, ";")
		if !strings.EqualFold(strings.TrimSpace(token), contentEncoding) {
			continue
		}
		// "q=0" explicitly refuses the coding
		params = strings.ReplaceAll(params, " ", "")
		return params != "q=0" && params != "q=0.0" && params != "q=0.00" && params != "q=0.000"
	}
	return false
}

// Negotiate picks the first encoding of Preferred advertised by the client,
// or "" when none is.
func Negotiate(acceptEncoding string) string {
	for _, contentEncoding := range Preferred {
		if Accepts(acceptEncoding, contentEncoding) {
			return contentEncoding
		}
	}
	return ""
}
