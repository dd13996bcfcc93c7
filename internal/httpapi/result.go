package httpapi

// Result is the JSON envelope every service responds with. Code is a
// stable machine-readable category so callers can tell a definitive
// rejection from a transient one without parsing messages.
type Result[T any] struct {
	Code    string `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result,omitempty"`
}

const (
	CodeOK = "ok"
	// CodeValidationError: malformed request, rejected before any remote call.
	CodeValidationError = "validation_error"
	// CodeNotFound: the requested local entity does not exist.
	CodeNotFound = "not_found"
	// CodeReferencedEntityNotFound: the patient a create refers to
	// definitively does not exist. Never retried.
	CodeReferencedEntityNotFound = "referenced_entity_not_found"
	// CodeDependencyUnavailable: the patient dependency is down or the
	// breaker is open; the caller may retry later.
	CodeDependencyUnavailable = "dependency_unavailable"
	// CodeRouteNotFound: the gateway has no backend for the path.
	CodeRouteNotFound = "route_not_found"
	// CodeInternalError: local storage or encoding failure.
	CodeInternalError = "internal_error"
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: CodeOK, Type: "success", Message: "ok", Result: result}
}

func Fail(code, message string) Result[any] {
	return Result[any]{Code: code, Type: "error", Message: message}
}
