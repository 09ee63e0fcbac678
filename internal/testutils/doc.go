// Package testutils provides testing utilities shared by the gateway's
// HTTP tests.
//
// # Fake upstream
//
// FakeUpstream stands in for the store API. Canned replies are keyed by
// "METHOD /path"; every request is recorded so tests can assert what the
// gateway forwarded:
//
//	up := testutils.NewFakeUpstream(t, map[string]testutils.Reply{
//		"GET /products/1": {Status: http.StatusOK, Body: `{"id":1}`},
//	})
//	client, _ := fakestore.NewClient(config.UpstreamConfig{BaseURL: up.URL(), TimeoutSeconds: 2}, nil)
//
// Unknown routes answer 404 with an empty body.
//
// # Assertions
//
// AssertErrorResponse and AssertNoContent check the gateway's error and
// delete responses on an httptest.ResponseRecorder.
package testutils
