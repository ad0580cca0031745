package hooks

// Kind identifies a lifecycle hook slot.
type Kind uint8

const (
	KindCtor Kind = iota
	KindDtor
	KindAdd
	KindSet
	KindRemove
	KindReplace
	KindCopy
	KindMove
	KindCopyCtor
	KindMoveCtor
)

var kindNames = [...]string{
	KindCtor:     "ctor",
	KindDtor:     "dtor",
	KindAdd:      "on_add",
	KindSet:      "on_set",
	KindRemove:   "on_remove",
	KindReplace:  "on_replace",
	KindCopy:     "copy",
	KindMove:     "move",
	KindCopyCtor: "copy_ctor",
	KindMoveCtor: "move_ctor",
}

// Kinds lists every slot in export order.
var Kinds = [...]Kind{
	KindCtor, KindDtor, KindAdd, KindSet, KindRemove,
	KindReplace, KindCopy, KindMove, KindCopyCtor, KindMoveCtor,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Pair reports whether the hook receives two regions.
func (k Kind) Pair() bool {
	return k >= KindReplace
}

// Event describes one observer invocation.
type Event struct {
	Component string
	Entities  []uint64
	Kind      Kind
	Count     int
}
