package authz

// Default page limits per resource type. Collection endpoints fall back to
// these when the client omits ?limit.
const (
	LimitProjects     = 10
	LimitTasks        = 20
	LimitInvoices     = 10
	LimitCustomers    = 10
	LimitTestimonials = 10
	LimitPortfolio    = 20
	LimitMessages     = 50
	LimitContact      = 20
)

// maxLimit caps client-supplied page sizes.
const maxLimit = 100

// OwnerScope returns the client_id predicate for a collection read: empty for
// admins (no restriction), the caller's own id for everyone else. Repositories
// treat a non-empty value as a mandatory AND filter, so client-supplied
// parameters can narrow a result set but never widen it past the owner.
func OwnerScope(id *Identity) string {
	if id.IsAdmin() {
		return ""
	}
	return id.ID
}

// Page is a normalized pagination window.
type Page struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip.
func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// NormalizePage clamps raw query parameters into a valid window:
// page >= 1, 1 <= limit <= maxLimit, with defaultLimit filling an absent or
// invalid limit.
func NormalizePage(page, limit, defaultLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Pages computes ceil(total/limit) for the pagination envelope.
func Pages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
