package domain

// Session is the normalized identity record produced by a session source.
// An unauthenticated session has zero values everywhere else.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	SubjectID     string `json:"subject_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          Role   `json:"role,omitempty"`
}

// Anonymous is the canonical unauthenticated session.
var Anonymous = Session{}

// Decision is the outcome of an authorization check. The check itself never
// navigates; the transport layer performs the redirect a denial names.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Allow marks the request authorized.
func Allow() Decision { return Decision{Allowed: true} }

// RedirectTo denies the request and names the path to send the caller to.
func RedirectTo(path string) Decision { return Decision{Redirect: path} }
