package tokenx

// Claims is the decoded payload of a verified token. Values keep the types
// encoding/json produced them with, so numeric claims are float64.
type Claims map[string]any

// Subject returns the "sub" claim or empty string.
func (c Claims) Subject() string { return c.stringClaim("sub") }

// Email returns the "email" claim or empty string.
func (c Claims) Email() string { return c.stringClaim("email") }

// Issuer returns the "iss" claim or empty string.
func (c Claims) Issuer() string { return c.stringClaim("iss") }

// Roles returns the "roles" claim as a string slice, preserving order.
// Non-string entries are skipped.
func (c Claims) Roles() []string {
	raw, ok := c["roles"].([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

// ExpiresAt returns the "exp" claim as unix seconds. The second return is
// false when the claim is absent or not numeric.
func (c Claims) ExpiresAt() (int64, bool) {
	switch v := c["exp"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

func (c Claims) stringClaim(name string) string {
	s, _ := c[name].(string)
	return s
}

// hasAudience reports whether the "aud" claim matches want. The claim may be
// a single string or a list of strings.
func (c Claims) hasAudience(want string) bool {
	switch aud := c["aud"].(type) {
	case string:
		return aud == want
	case []any:
		for _, a := range aud {
			if s, ok := a.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}
