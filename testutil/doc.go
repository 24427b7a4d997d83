// Package testutil provides test doubles for devportal clients.
//
// Transport is a canned-response table keyed by method and URL that records
// every request it receives. It plugs into any client through its
// WithTransport option:
//
//	tr := testutil.NewTransport()
//	tr.On(http.MethodPost, "https://jira.test/rest/api/2/issue", testutil.JSON(201, `{"id":"1","key":"ABC-1"}`))
//	client := jira.New(cfg, jira.WithTransport(tr))
//
// Server is a gin-backed fake upstream served by httptest, for tests that
// exercise the real httpclient transport end to end.
//
// Both implement TestComponent, the component lifecycle plus Reset,
// Snapshot and Restore, so they can be managed together:
//
//	testutil.T(t).Setup(srv)
package testutil
