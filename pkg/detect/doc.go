// Package detect works out which provider API is listening on a host.
//
// Detection walks candidate ports, then https before http, then the known
// provider signatures in declaration order, then each signature's paths,
// probing base URL + path until something answers below 500:
//
//	target, err := detect.Normalize("10.0.0.5")
//	if err != nil {
//	    return err
//	}
//	d := detect.New(probe.New(probe.Options{}))
//	res := d.Detect(ctx, target)
//	if res == nil {
//	    // nothing answered; ask the user for --override
//	}
//
// The first hit wins. A host that answers for several providers is reported
// as the one declared first, which also means any HTTP server answering 404
// everywhere is reported as openai. Parallel mode (WithParallel) probes
// base URLs concurrently but picks the winner by candidate order, so the
// answer never depends on timing.
package detect
