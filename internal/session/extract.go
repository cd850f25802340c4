package session

import (
	"encoding/json"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
)

// PayloadEvaluator abstracts JMESPath operations for testability.
type PayloadEvaluator interface {
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements PayloadEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// The API never settled on one response shape for credential operations.
// Login responses carry the user flat under "user", directly under
// "data", or nested three levels deep; registration responses only ever
// use the nested shape. Extraction is centralized here so shape branching
// stays out of the state machine.
const (
	exprFlatUser   = "user"
	exprNestedUser = "data.data.data"
	exprDataUser   = "data"
)

// extractLoginUser resolves the user payload from a login response.
// The single-level "data" shape must be tried after the deep-nested one:
// on a nested envelope it would match the wrapper object, not the record.
func extractLoginUser(eval PayloadEvaluator, data map[string]any) (map[string]any, bool) {
	for _, expr := range []string{exprFlatUser, exprNestedUser, exprDataUser} {
		if raw, ok := evalUser(eval, expr, data); ok {
			return raw, true
		}
	}
	return nil, false
}

// extractRegistrationUser resolves the user payload from a registration
// response. Registration only ever uses the nested shape.
func extractRegistrationUser(eval PayloadEvaluator, data map[string]any) (map[string]any, bool) {
	return evalUser(eval, exprNestedUser, data)
}

// NormalizeLoginUser parses a login response body into a User, trying
// every historical payload shape. It is the single normalization function
// for login payloads; adapters and the manager both route through it.
// A nil evaluator uses the library-backed default.
func NormalizeLoginUser(eval PayloadEvaluator, data map[string]any) (*domainauth.User, bool) {
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}
	raw, ok := extractLoginUser(eval, data)
	if !ok {
		return nil, false
	}
	u, err := buildUser(raw, true)
	if err != nil {
		return nil, false
	}
	return u, true
}

// NormalizeRegistrationUser parses a registration response body into a
// User. Registration payloads are nested-only and never carry admins, so
// the kind comes from the business-field heuristic alone.
func NormalizeRegistrationUser(eval PayloadEvaluator, data map[string]any) (*domainauth.User, bool) {
	if eval == nil {
		eval = jmespathLibEvaluator{}
	}
	raw, ok := extractRegistrationUser(eval, data)
	if !ok {
		return nil, false
	}
	u, err := buildUser(raw, false)
	if err != nil {
		return nil, false
	}
	return u, true
}

func evalUser(eval PayloadEvaluator, expr string, data map[string]any) (map[string]any, bool) {
	out, err := eval.Evaluate(expr, data)
	if err != nil {
		return nil, false
	}
	raw, ok := out.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

// buildUser constructs a User from a raw API payload. The kind is derived
// once here and pinned for the session's lifetime. Login payloads may
// name the kind explicitly (allowExplicitKind); registration payloads
// only ever use the business-field heuristic. Admin accounts bypass
// verification, so their is_verified flag is forced on.
func buildUser(raw map[string]any, allowExplicitKind bool) (*domainauth.User, error) {
	u := &domainauth.User{}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(encoded, u); err != nil {
		return nil, err
	}

	u.UserType = deriveKind(raw, allowExplicitKind)
	if u.UserType == domainauth.KindAdmin {
		u.IsVerified = domainauth.FlagOn
	}
	return u, nil
}

func deriveKind(raw map[string]any, allowExplicit bool) domainauth.Kind {
	if v, ok := raw["user_type"].(string); ok && allowExplicit {
		switch domainauth.Kind(strings.ToLower(strings.TrimSpace(v))) {
		case domainauth.KindRenter:
			return domainauth.KindRenter
		case domainauth.KindLandlord:
			return domainauth.KindLandlord
		case domainauth.KindAdmin:
			return domainauth.KindAdmin
		}
	}
	if hasStringValue(raw, "business_name") || hasStringValue(raw, "business_type") {
		return domainauth.KindLandlord
	}
	return domainauth.KindRenter
}

func hasStringValue(raw map[string]any, key string) bool {
	v, ok := raw[key].(string)
	return ok && strings.TrimSpace(v) != ""
}
