// Package adminapi is the typed client of the developer-portal
// administrative API: services, messages and citizen profiles.
//
//	client, err := adminapi.New(adminapi.Config{
//	    BaseURL:         "https://api.example.it",
//	    SubscriptionKey: key,
//	})
//	res := client.GetService("svc-1").Run(ctx)
//	svc, err := adminapi.ValueOf(res).Unwrap()
//
// Every operation sends the subscription key and decodes the response
// through the same ladder: 200 and 201 carry the validated value, 400, 401,
// 403, 404 and 409 become the matching typed errors, any status >= 500
// becomes UPSTREAM_ERROR and everything else UNKNOWN_STATUS.
package adminapi
