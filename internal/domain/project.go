package domain

import "fmt"

// Project identifies one configured remote project
type Project struct {
	Key      string // registry key callers pass as project_name
	Name     string // display name
	RemoteID string // remote project identifier; doubles as the mirror directory name
	Token    string // git credential for the remote
}

// GitURL returns the credential-embedded clone address for the project.
// The remote expects the literal user "git" with the credential as the
// password.
func (p Project) GitURL(host string) string {
	return fmt.Sprintf("https://git:%s@%s/%s", p.Token, host, p.RemoteID)
}
