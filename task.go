package linkcheck

// ResourceKind identifies the type of a discovered resource.
type ResourceKind string

// Resource kinds. Pages are the only kind whose fetched content is
// inspected for further references; the other kinds are assets and are
// validated without expansion.
const (
	KindPage       ResourceKind = "page"
	KindImage      ResourceKind = "image"
	KindScript     ResourceKind = "script"
	KindStylesheet ResourceKind = "stylesheet"
)

// IsAsset reports whether the kind is a non-page resource.
func (k ResourceKind) IsAsset() bool {
	return k != KindPage
}

// Task is a single unit of crawl work: one canonical URL to validate.
// Tasks are created by the scheduler when a reference is discovered and
// are never mutated afterwards.
type Task struct {
	// URL is the canonical absolute URL to fetch.
	URL string

	// Depth is the distance from the seed. The seed itself has depth 0.
	Depth int

	// Kind is derived from the element the reference was found in.
	Kind ResourceKind

	// ParentURL is the page that referenced this resource. Empty for
	// the seed.
	ParentURL string
}

// Outcome records the validated state of a single resource. Exactly one
// Outcome exists per visited URL; when several pages reference the same
// resource, the first discovery wins and supplies ParentURL.
type Outcome struct {
	URL  string       `json:"url"`
	Kind ResourceKind `json:"kind"`

	// StatusCode is the HTTP status of the completed request, or zero
	// when the fetch failed at the transport level.
	StatusCode int `json:"statusCode,omitempty"`

	// ErrorCode classifies a transport failure (ETIMEOUT, ECONNREFUSED,
	// ETLS, EREDIRECT, EINTERNAL). Empty when the request completed.
	ErrorCode string `json:"errorCode,omitempty"`

	// ErrorMessage is the human-readable failure description.
	ErrorMessage string `json:"errorMessage,omitempty"`

	ParentURL string `json:"parentUrl,omitempty"`
}

// OK reports whether the resource is considered working: the request
// completed with a status in the 200-399 range. Any transport failure or
// a status of 400 and above counts as broken.
func (o Outcome) OK() bool {
	return o.ErrorCode == "" && o.StatusCode >= 200 && o.StatusCode < 400
}
