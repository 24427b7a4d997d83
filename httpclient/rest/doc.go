// Package rest is the typed request/response contract layer on top of the
// httpclient transport.
//
// An operation is described once by a Descriptor: how to build the URL,
// query, headers and body from typed parameters, and a Decoder that turns
// every expected status into a validated value or a typed *errors.AppError.
// An Executor runs descriptors against a base URL and a Transport:
//
//	getService := rest.Descriptor[string, Service]{
//	    Name:    "adminapi.getService",
//	    Method:  http.MethodGet,
//	    URL:     func(id string) string { return rest.Path("/adm/services/%s", id) },
//	    Headers: rest.SubscriptionKeyHeader[string](key),
//	    Decoder: rest.Compose(
//	        rest.ServerError[Service](""),
//	        rest.Unauthorized[Service](""),
//	        rest.JSON[Service](http.StatusOK),
//	    ),
//	}.MustValidate()
//
//	res := rest.Call(ctx, exec, getService, "svc-1")
//
// Calls never panic on expected failures: transport errors become
// TRANSPORT_FAILURE, bodies that fail validation become DECODE_FAILURE with
// the full field-path report, and unlisted statuses become UNKNOWN_STATUS.
package rest
