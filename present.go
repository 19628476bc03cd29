package shodan

import (
	"fmt"
	"io"
)

// Present writes a human-readable report of one call to w.
//
// A successful exchange (any status) prints the status line and the raw body.
// A failed one prints the error. Nothing is returned; write errors are ignored.
func Present(w io.Writer, resp *Response, err error) {
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if resp == nil {
		fmt.Fprintln(w, "Error: no response")
		return
	}
	fmt.Fprintf(w, "Status: %s\n", resp.Status)
	fmt.Fprintf(w, "Body:\n%s\n", resp.Body)
}
