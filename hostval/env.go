package hostval

// ObjectType identifies the kind of a host object.
type ObjectType uint8

const (
	ObjectMap ObjectType = iota + 1
	ObjectVec
	ObjectBinary
)

func (t ObjectType) String() string {
	switch t {
	case ObjectMap:
		return "map"
	case ObjectVec:
		return "vec"
	case ObjectBinary:
		return "binary"
	}
	return "unknown"
}

// Env owns host objects and the operations on them. Mutating operations
// return a new object; the input object is never changed.
type Env interface {
	// MapNew creates an empty map.
	MapNew() (Val, error)

	// MapPut returns a copy of m with k bound to v.
	MapPut(m, k, v Val) (Val, error)

	// MapGet returns the value bound to k and whether it was present.
	MapGet(m, k Val) (Val, bool, error)

	// MapHas reports whether k is bound in m.
	MapHas(m, k Val) (bool, error)

	// MapDel returns a copy of m without k. Deleting a missing key fails.
	MapDel(m, k Val) (Val, error)

	// MapLen returns the number of entries in m.
	MapLen(m Val) (int, error)

	// MapKeys returns the keys of m, in key order, as a vector.
	MapKeys(m Val) (Val, error)

	// VecNew creates an empty vector.
	VecNew() (Val, error)

	// VecPush returns a copy of v with x appended.
	VecPush(v, x Val) (Val, error)

	// VecGet returns the element at index i.
	VecGet(v Val, i int) (Val, error)

	// VecLen returns the number of elements in v.
	VecLen(v Val) (int, error)

	// BinaryNew creates a binary object holding a copy of b.
	BinaryNew(b []byte) (Val, error)

	// BinaryBytes returns a copy of the bytes held by v.
	BinaryBytes(v Val) ([]byte, error)

	// ObjectType returns the type of the object referenced by v.
	// It returns false for non-object values and unknown handles.
	ObjectType(v Val) (ObjectType, bool)
}
