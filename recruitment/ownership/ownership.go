package ownership

// DescriptorKind distinguishes how an entity reaches its owner
type DescriptorKind string

const (
	// Direct means the entity row itself carries the owner id
	Direct DescriptorKind = "direct"
	// Indirect means the owner id is reached through one or more relation hops
	Indirect DescriptorKind = "indirect"
)

// RelationHop is one join step on the path from an entity to its owner.
// The previous table's FromColumn equals this hop's table ToColumn.
type RelationHop struct {
	Table      string
	FromColumn string
	ToColumn   string
}

// Descriptor states, as configuration data, how ownership of an entity
// kind is determined. It is supplied once per kind and reused for every
// check, so a single verifier serves all resource kinds.
type Descriptor struct {
	Table    string
	IDColumn string
	Kind     DescriptorKind

	// OwnerColumn is the owner id column on the entity table (Direct only)
	OwnerColumn string

	// Path and TerminalColumn describe the join chain to the owner (Indirect only)
	Path           []RelationHop
	TerminalColumn string

	// SoftDeleteColumn, when set, excludes soft-deleted rows from every check
	SoftDeleteColumn string
}

// Describable is implemented by entity types that know their own
// ownership descriptor
type Describable interface {
	OwnershipDescriptor() Descriptor
}

// Op is a predicate operator
type Op string

const (
	OpEq     Op = "="
	OpNeq    Op = "<>"
	OpGt     Op = ">"
	OpGte    Op = ">="
	OpLt     Op = "<"
	OpLte    Op = "<="
	OpIn     Op = "in"
	OpIsNull Op = "is_null"
)

// Condition is one predicate term. Unqualified columns refer to the
// entity table; callers may qualify explicitly (e.g. "r1.user_id").
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Eq builds an equality condition
func Eq(column string, value any) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

// In builds a set-membership condition
func In(column string, value any) Condition {
	return Condition{Column: column, Op: OpIn, Value: value}
}

// IsNull builds a null-check condition
func IsNull(column string) Condition {
	return Condition{Column: column, Op: OpIsNull}
}

// Query is a single-statement lookup: the entity table, the join chain,
// and every predicate term combined with AND. Ownership enforcement
// lives inside this one query, never in a second application-side
// comparison.
type Query struct {
	Table      string
	IDColumn   string
	Joins      []RelationHop
	Conditions []Condition
}
