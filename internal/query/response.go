package query

import (
	"fmt"
	"io"
)

// Response status codes
const (
	StatusOK         = 200
	StatusBadRequest = 400
	StatusNotFound   = 404
	StatusInternal   = 500
)

// Response is one complete reply: a status code and the already-encoded
// body. Error responses carry the error message as their body.
type Response struct {
	Code    int
	Body    []byte
	Fixed16 bool
}

func errorResponse(code int, fixed16 bool, format string, args ...any) *Response {
	return &Response{
		Code:    code,
		Body:    []byte(fmt.Sprintf(format, args...) + "\n"),
		Fixed16: fixed16,
	}
}

// WriteTo writes the response, framed with the fixed16 status line when
// the request asked for one: "<code:3> <body length:11>\n<body>".
func (r *Response) WriteTo(w io.Writer) error {
	if r.Fixed16 {
		if _, err := fmt.Fprintf(w, "%3d %11d\n", r.Code, len(r.Body)); err != nil {
			return err
		}
	}
	_, err := w.Write(r.Body)
	return err
}
