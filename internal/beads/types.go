package beads

// Dependency types understood by the beads trackers.
const (
	DepBlocks      = "blocks"
	DepParentChild = "parent-child"
	DepRelated     = "related"
)

// IssueTypeEpic marks issues that group other issues through parent-child links.
const IssueTypeEpic = "epic"

// Dependency captures dependency metadata from the Beads API.
type Dependency struct {
	TargetID string `json:"id"`
	Type     string `json:"dependency_type"`
}

// Dependent represents a reverse dependency entry.
type Dependent struct {
	ID   string `json:"id"`
	Type string `json:"dependency_type"`
}

// FullIssue models the expanded issue data read from the tracker.
type FullIssue struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Status       string       `json:"status"`
	IssueType    string       `json:"issue_type"`
	Priority     int          `json:"priority"`
	Description  string       `json:"description"`
	Assignee     string       `json:"assignee"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
	ExternalRef  string       `json:"external_ref"`
	Labels       []string     `json:"labels"`
	Dependencies []Dependency `json:"dependencies"`
	Dependents   []Dependent  `json:"dependents"`
}
