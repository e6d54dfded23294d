package codec

import (
	"errors"
	"testing"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/hostval"
	"github.com/wippyai/contractgen/schema"
)

func shapeCodec(t *testing.T) (*Enum[Shape], *Registry) {
	t.Helper()
	reg := NewRegistry()
	if _, err := NewStruct[Rect](reg); err != nil {
		t.Fatal(err)
	}
	codec, err := NewEnum[Shape](reg)
	if err != nil {
		t.Fatal(err)
	}
	return codec, reg
}

// Scenario B: payload and unit cases.
func TestEnum_Shape(t *testing.T) {
	codec, _ := shapeCodec(t)

	desc := codec.Descriptor()
	if len(desc.Cases) != 3 {
		t.Fatalf("cases = %d", len(desc.Cases))
	}
	if desc.Cases[0].Name.String() != "Circle" || desc.Cases[0].Payload.Kind != schema.KindI32 {
		t.Errorf("Circle = %+v", desc.Cases[0])
	}
	if desc.Cases[1].Payload.Kind != schema.KindUDT || desc.Cases[1].Payload.Name != "Rect" {
		t.Errorf("Rect = %+v", desc.Cases[1])
	}
	if desc.Cases[2].Name.String() != "Empty" || desc.Cases[2].Payload != nil {
		t.Errorf("Empty = %+v", desc.Cases[2])
	}

	env := hostval.NewLocalEnv()
	circle, err := codec.Encode(env, Shape{Circle: ptr[int32](5)})
	if err != nil {
		t.Fatal(err)
	}
	disc, payload, err := hostval.SplitPair(env, circle)
	if err != nil {
		t.Fatal(err)
	}
	if disc != sym("Circle") || payload != hostval.I32Val(5) {
		t.Errorf("Circle encoded as (%v, %v)", disc, payload)
	}

	empty, err := codec.Encode(env, Shape{Empty: &struct{}{}})
	if err != nil {
		t.Fatal(err)
	}
	disc, payload, _ = hostval.SplitPair(env, empty)
	if disc != sym("Empty") || !payload.IsUnit() {
		t.Errorf("Empty encoded as (%v, %v)", disc, payload)
	}

	got, err := codec.Decode(env, circle)
	if err != nil {
		t.Fatal(err)
	}
	if got.Circle == nil || *got.Circle != 5 || got.Rect != nil || got.Empty != nil {
		t.Errorf("Decode(Circle) = %+v", got)
	}
	got, err = codec.Decode(env, empty)
	if err != nil || got.Empty == nil || got.Circle != nil {
		t.Errorf("Decode(Empty) = %+v, %v", got, err)
	}

	triangle, _ := hostval.NewPair(env, sym("Triangle"), hostval.Unit())
	got, err = codec.Decode(env, triangle)
	if !cgerrors.IsConversion(err) {
		t.Fatalf("unknown discriminant: err = %v", err)
	}
	if !errors.Is(err, &cgerrors.Error{Phase: cgerrors.PhaseDecode, Kind: cgerrors.KindInvalidVariant}) {
		t.Errorf("err = %v, want invalid_variant", err)
	}
	if got != (Shape{}) {
		t.Error("failed decode should return the zero value")
	}
}

func TestEnum_RecordPayload(t *testing.T) {
	codec, _ := shapeCodec(t)
	env := hostval.NewLocalEnv()
	val, err := codec.Encode(env, Shape{Rect: &Rect{W: 4, H: 5}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := codec.Decode(env, val)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rect == nil || *got.Rect != (Rect{W: 4, H: 5}) {
		t.Errorf("Decode = %+v", got)
	}
}

func TestEnum_DecodeErrors(t *testing.T) {
	codec, _ := shapeCodec(t)
	env := hostval.NewLocalEnv()

	badPayload, _ := hostval.NewPair(env, sym("Circle"), hostval.U64Val(5))
	unitWithPayload, _ := hostval.NewPair(env, sym("Empty"), hostval.I32Val(1))
	numericDisc, _ := hostval.NewPair(env, hostval.U32Val(0), hostval.Unit())
	triple, _ := hostval.NewVec(env, sym("Circle"), hostval.I32Val(1), hostval.Unit())
	m, _ := env.MapNew()

	for name, v := range map[string]hostval.Val{
		"payload type":      badPayload,
		"unit with payload": unitWithPayload,
		"numeric disc":      numericDisc,
		"triple":            triple,
		"map":               m,
		"scalar":            hostval.I32Val(1),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := codec.Decode(env, v); !cgerrors.IsConversion(err) {
				t.Errorf("err = %v, want conversion error", err)
			}
		})
	}
}

func TestEnum_EncodeRequiresOneCase(t *testing.T) {
	codec, _ := shapeCodec(t)
	env := hostval.NewLocalEnv()
	for name, v := range map[string]Shape{
		"none": {},
		"two":  {Circle: ptr[int32](1), Empty: &struct{}{}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Encode(env, v)
			if !errors.Is(err, &cgerrors.Error{Phase: cgerrors.PhaseEncode, Kind: cgerrors.KindInvalidVariant}) {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestEnum_FirstMatchWins(t *testing.T) {
	type Ambiguous struct {
		First  *struct{ V uint32 } `contract:"A"`
		Second *struct{ V uint32 } `contract:"A"`
		Other  *struct{}
	}
	codec, err := NewEnum[Ambiguous](NewRegistry())
	if err != nil {
		t.Fatalf("duplicate case identifiers are allowed: %v", err)
	}

	env := hostval.NewLocalEnv()
	val, err := codec.Encode(env, Ambiguous{Second: &struct{ V uint32 }{V: 9}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := codec.Decode(env, val)
	if err != nil {
		t.Fatal(err)
	}
	if got.First == nil || got.First.V != 9 || got.Second != nil {
		t.Errorf("Decode = %+v, want the first matching case", got)
	}
}

func TestEnum_MultiPayload(t *testing.T) {
	type Bad struct {
		Pair *struct {
			A uint32
			B uint32
		}
		Fine *uint32
	}
	_, err := NewEnum[Bad](NewRegistry())
	if !errors.Is(err, &cgerrors.Error{Phase: cgerrors.PhaseGenerate, Kind: cgerrors.KindUnsupportedVariantShape}) {
		t.Errorf("err = %v, want unsupported_variant_shape", err)
	}
}

func TestEnum_InvalidCases(t *testing.T) {
	type NotPointer struct {
		A uint32
	}
	type Unsupported struct {
		A *string
		B *struct{ v uint32 }
	}
	if _, err := NewEnum[NotPointer](NewRegistry()); !errors.Is(err, cgerrors.ErrGeneration) {
		t.Errorf("non-pointer case: %v", err)
	}
	_, err := NewEnum[Unsupported](NewRegistry())
	var list *cgerrors.List
	if !errors.As(err, &list) || list.Len() != 2 {
		t.Errorf("err = %v, want two collected errors", err)
	}
}

func TestEnum_Artifact(t *testing.T) {
	codec, reg := shapeCodec(t)
	if codec.Artifact() == nil || codec.Artifact().Name != "__SPEC_XDR_SHAPE" {
		t.Fatalf("artifact = %+v", codec.Artifact())
	}
	entry, _, err := schema.Unmarshal(codec.Artifact().Data)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Union == nil || entry.Union.Name != "Shape" || len(entry.Union.Cases) != 3 {
		t.Errorf("decoded artifact = %+v", entry)
	}

	arts := reg.Artifacts()
	if len(arts) != 2 || arts[0].Name != "__SPEC_XDR_RECT" || arts[1].Name != "__SPEC_XDR_SHAPE" {
		t.Errorf("registry artifacts = %+v", arts)
	}
}
