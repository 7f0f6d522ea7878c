package dto

// Session is the payload returned by GET /session: the caller's identity plus
// their default organization and workspace.
type Session struct {
	ID             uint   `json:"id"`
	Email          string `json:"email"`
	WorkspaceID    string `json:"workspace_id"`
	OrganizationID string `json:"organization_id"`
}
