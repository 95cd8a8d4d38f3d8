// Package probe implements the connectivity check used by endpoint detection.
//
// A probe asks one question: does anything speaking HTTP answer at this URL?
// Any response below 500 counts, including 401, 403 and 404, because a
// structured response is evidence the service exists even when the path is
// wrong or a credential is required.
//
// Each probe is at most two requests. HEAD goes first; GET follows on the
// same URL when HEAD is rejected (405, 501), gets a server error, or the
// server breaks the exchange. There is no other retry.
//
//	p := probe.New(probe.Options{Timeout: 3 * time.Second})
//	defer p.Close()
//
//	res := p.Probe(ctx, "http://localhost:11434/api/tags", nil)
//	if res.Reachable {
//	    fmt.Println("answered with", res.StatusCode)
//	}
package probe
