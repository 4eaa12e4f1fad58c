package handlers

import "time"

// AddRedirectRequest is the request body for creating a redirect.
type AddRedirectRequest struct {
	Body struct {
		Destination string `doc:"Absolute destination URL" example:"https://example.com/landing" json:"destination"`
	}
}

// AddRedirectResponse returns the two link forms embedding the key and token.
type AddRedirectResponse struct {
	Body struct {
		Message         string `doc:"Confirmation message"                json:"message"`
		RedirectURL     string `doc:"Link with the token as a query parameter" json:"redirectUrl"`
		PathRedirectURL string `doc:"Link with the token as a path segment"    json:"pathRedirectUrl"`
	}
}

// ResolveRequest is the path-form resolution request: GET /{key}/{token}.
type ResolveRequest struct {
	Key       string `doc:"Redirect key"                example:"7b06f52e19c8d3a4" path:"key"`
	Token     string `doc:"Signed token issued for the key" path:"token"`
	Email     string `doc:"Optional email appended to the destination" query:"email"`
	UserAgent string `header:"User-Agent"`
}

// ResolveQueryRequest is the query-form resolution request: GET /{key}?token=...
type ResolveQueryRequest struct {
	Key       string `doc:"Redirect key" example:"7b06f52e19c8d3a4" path:"key"`
	Token     string `doc:"Signed token issued for the key" query:"token"`
	Email     string `doc:"Optional email appended to the destination" query:"email"`
	UserAgent string `header:"User-Agent"`
}

// ResolveResponse redirects the visitor to the computed destination.
type ResolveResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The destination URL" header:"Location"`
	}
}

// RecordResponse is the JSON shape of a stored redirect.
type RecordResponse struct {
	Key         string    `json:"key"`
	Destination string    `json:"destination"`
	Token       string    `json:"token"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListRedirectsResponse is the administrative listing of all redirects.
type ListRedirectsResponse struct {
	Body []RecordResponse
}

// UpdateRedirectRequest replaces the destination of an existing redirect.
type UpdateRedirectRequest struct {
	Key  string `doc:"Redirect key" path:"key"`
	Body struct {
		Destination string `doc:"New absolute destination URL" json:"destination"`
	}
}

// DeleteRedirectRequest removes a redirect.
type DeleteRedirectRequest struct {
	Key string `doc:"Redirect key" path:"key"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}
