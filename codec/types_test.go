package codec

import (
	"github.com/wippyai/contractgen/hostval"
	"github.com/wippyai/contractgen/symbol"
)

type Point struct {
	X     int32
	Y     int32
	cache uint64
}

type Rect struct {
	W uint32
	H uint32
}

type Shape struct {
	Circle *int32
	Rect   *Rect
	Empty  *struct{}
}

type Pool struct {
	Reserves map[symbol.Symbol]int32
	History  []*uint64
}

type Everything struct {
	A     uint32
	B     int32
	C     uint64
	D     int64
	E     bool
	F     symbol.Symbol
	G     hostval.Bitset
	H     hostval.Status
	Blob  []byte
	Maybe *uint64
	Tags  map[symbol.Symbol]struct{}
	Pair  struct {
		N int32
		B bool
	}
	Origin Point
	Shapes []Shape
	Named  map[uint32]*Point
}

// recordingEnv records the keys passed to MapPut.
type recordingEnv struct {
	*hostval.LocalEnv
	puts []hostval.Val
}

func (r *recordingEnv) MapPut(m, k, v hostval.Val) (hostval.Val, error) {
	r.puts = append(r.puts, k)
	return r.LocalEnv.MapPut(m, k, v)
}

func sym(name string) hostval.Val {
	return hostval.SymbolVal(symbol.MustNew(name))
}

func ptr[T any](v T) *T {
	return &v
}
