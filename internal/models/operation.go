package models

// Operation is one method and path pair declared by a document
type Operation struct {
	Path        string
	Method      string
	OperationID string
	Tags        []string
	ServerURL   string
	FullPath    string // ServerURL + Path, template unresolved
}
