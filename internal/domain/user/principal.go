package user

// Principal is the authenticated caller: public user id plus role. It is
// passed explicitly into every usecase; nothing reads identity from ambient
// state.
type Principal struct {
	UserID string
	Role   Role
}

// Authorize is the role gate every operation runs first. A nil principal is
// "unauthenticated", a principal whose role is not in the allowed set is
// "forbidden" — callers map the two to different HTTP statuses. Deny
// short-circuits before any side effect or audit entry.
func Authorize(p *Principal, roles ...Role) error {
	if p == nil || p.UserID == "" {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
