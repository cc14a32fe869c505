package user

// Actor is the authenticated principal extracted from JWT claims.
type Actor struct {
	UserID string
	Role   Role
}

// Relation names how an actor is tied to a resource. Resolved by the caller
// (only the owning service knows who the assignee or assigner is).
type Relation string

const (
	RelationNone     Relation = ""
	RelationSelf     Relation = "self"
	RelationAssignee Relation = "assignee"
	RelationAssigner Relation = "assigner"
)

// Allows is the single policy-evaluation entry point: an operation is
// permitted when the actor's role carries the permission, or when the given
// ownership relation is in the operation's allowed relations. Route handlers
// and services call this instead of repeating inline role-array checks.
func Allows(actor Actor, permission Permission, relation Relation, allowedRelations ...Relation) bool {
	if HasPermission(actor.Role, permission) {
		return true
	}
	if relation == RelationNone {
		return false
	}
	for _, allowed := range allowedRelations {
		if relation == allowed {
			return true
		}
	}
	return false
}
