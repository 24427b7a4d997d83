package jira

// CreatedIssue identifies a newly created issue.
type CreatedIssue struct {
	ID  string `json:"id" yaml:"id" validate:"notblank"`
	Key string `json:"key" yaml:"key" validate:"notblank"`
}

// CreatedComment is a newly added comment. Other properties of the upstream
// answer are ignored.
type CreatedComment struct {
	ID   string `json:"id" yaml:"id" validate:"notblank"`
	Body string `json:"body" yaml:"body" validate:"notblank"`
}

// SearchIssuesResponse is one page of search results.
type SearchIssuesResponse struct {
	StartAt int     `json:"startAt" yaml:"startAt"`
	Total   int     `json:"total" yaml:"total"`
	Issues  []Issue `json:"issues" yaml:"issues" validate:"dive"`
}

// Issue is a search hit.
type Issue struct {
	ID     string      `json:"id" yaml:"id" validate:"notblank"`
	Key    string      `json:"key" yaml:"key" validate:"notblank"`
	Self   string      `json:"self" yaml:"self" validate:"notblank"`
	Fields IssueFields `json:"fields" yaml:"fields"`
}

// IssueFields are the fields requested by the searches.
type IssueFields struct {
	Assignee any           `json:"assignee" yaml:"assignee"`
	Comment  IssueComments `json:"comment" yaml:"comment"`
	Labels   any           `json:"labels" yaml:"labels"`
	Status   IssueStatus   `json:"status" yaml:"status"`
	Summary  string        `json:"summary" yaml:"summary"`
}

// IssueComments is the comment page embedded in an issue.
type IssueComments struct {
	Comments   any    `json:"comments" yaml:"comments"`
	MaxResults int    `json:"maxResults" yaml:"maxResults"`
	Self       string `json:"self" yaml:"self"`
	StartAt    int    `json:"startAt" yaml:"startAt"`
	Total      int    `json:"total" yaml:"total"`
}

// IssueStatus is the workflow status of an issue.
type IssueStatus struct {
	Name string `json:"name" yaml:"name"`
}

// searchPayload is the body of POST /rest/api/2/search.
type searchPayload struct {
	Expand       []string `json:"expand"`
	Fields       []string `json:"fields"`
	FieldsByKeys bool     `json:"fieldsByKeys"`
	JQL          string   `json:"jql"`
	StartAt      int      `json:"startAt"`
}

type issuePayload struct {
	Fields issueFieldsPayload `json:"fields"`
}

type issueFieldsPayload struct {
	Description string     `json:"description"`
	IssueType   namedField `json:"issuetype"`
	Labels      []string   `json:"labels"`
	Project     keyedField `json:"project"`
	Summary     string     `json:"summary"`
}

type namedField struct {
	Name string `json:"name"`
}

type keyedField struct {
	Key string `json:"key"`
}

type commentPayload struct {
	Body string `json:"body"`
}

type transitionPayload struct {
	Update     *transitionUpdate `json:"update,omitempty"`
	Transition transitionRef     `json:"transition"`
}

type transitionUpdate struct {
	Comment []commentAdd `json:"comment"`
}

type commentAdd struct {
	Add commentPayload `json:"add"`
}

type transitionRef struct {
	ID string `json:"id"`
}
