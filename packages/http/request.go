package http

// Header is a single request header. Requests carry headers as an ordered
// slice rather than a map so that declaration order is preserved on the wire
// and duplicate keys are sent as repeated header lines.
type Header struct {
	Key   string
	Value string
}

// Request is a fully resolved HTTP request: every variable interpolation has
// already happened and the URL is absolute.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    string
	HasBody bool
}

func NewRequest(method, requestURL string) *Request {
	return &Request{
		Method: method,
		URL:    requestURL,
	}
}

func (r *Request) AddHeader(key, value string) *Request {
	r.Headers = append(r.Headers, Header{Key: key, Value: value})
	return r
}

func (r *Request) SetBody(body string) *Request {
	r.Body = body
	r.HasBody = true
	return r
}
