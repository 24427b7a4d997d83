// Package jira is a client for the issue tracker that records service
// review requests.
//
// Issues belong to a service through a label made of ServiceTagPrefix and
// the service id. Every operation performs one HTTP call and returns a lazy
// result.Task; nothing is sent until the task runs.
//
//	c, err := jira.New(jira.Config{
//	    BaseURL: "https://example.atlassian.net",
//	    Email:   "bot@example.com",
//	    Token:   token,
//	    BoardID: "DEV",
//	})
//	issues, err := c.SearchServiceIssues("svc-1").Run(ctx).Unwrap()
package jira
