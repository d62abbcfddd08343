package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Kind enumerates the supported gate families. The set is closed: name
// lookup maps onto it and everything else is ErrUnknownGate.
type Kind int

const (
	KindI Kind = iota
	KindX
	KindY
	KindZ
	KindH
	KindS
	KindSdg
	KindT
	KindTdg
	KindRX
	KindRY
	KindRZ
	KindCNOT
	KindCZ
	KindSwap
	KindToffoli
	KindCustom
)

// Gate is an immutable unitary matrix over one or more qubits. Gates
// are validated at construction and shared read-only between
// applications; the zero value is not usable.
//
// The matrix is row-major over local basis states where bit b of the
// local index is the value of target qubit b. For CNOT that makes
// targets[0] the control and targets[1] the target.
type Gate struct {
	name   string
	kind   Kind
	arity  int
	matrix []complex128
}

// Name returns the gate's display name.
func (g *Gate) Name() string { return g.name }

// Kind returns the gate's family.
func (g *Gate) Kind() Kind { return g.kind }

// Arity returns the number of target qubits k.
func (g *Gate) Arity() int { return g.arity }

// Dim returns the matrix dimension 2^k.
func (g *Gate) Dim() int { return 1 << g.arity }

// Matrix returns a copy of the row-major matrix.
func (g *Gate) Matrix() []complex128 {
	out := make([]complex128, len(g.matrix))
	copy(out, g.matrix)
	return out
}

const invSqrt2 = 0.7071067811865476

// newGate validates unitarity (U†U = I within Epsilon) and installs the
// matrix. A failed check returns ErrNonUnitaryGate and no gate.
func newGate(name string, kind Kind, arity int, matrix []complex128) (*Gate, error) {
	dim := 1 << arity
	if len(matrix) != dim*dim {
		return nil, fmt.Errorf("%w: %s matrix has %d entries, want %d", ErrGateArityMismatch, name, len(matrix), dim*dim)
	}
	// Column inner products must reproduce the identity.
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			var dot complex128
			for k := 0; k < dim; k++ {
				dot += cmplx.Conj(matrix[k*dim+i]) * matrix[k*dim+j]
			}
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(dot-want) > Epsilon {
				return nil, fmt.Errorf("%w: %s column check (%d,%d) = %v", ErrNonUnitaryGate, name, i, j, dot)
			}
		}
	}
	m := make([]complex128, len(matrix))
	copy(m, matrix)
	return &Gate{name: name, kind: kind, arity: arity, matrix: m}, nil
}

func mustGate(name string, kind Kind, arity int, matrix []complex128) *Gate {
	g, err := newGate(name, kind, arity, matrix)
	if err != nil {
		panic(err)
	}
	return g
}

// Custom validates and returns a caller-supplied gate. The matrix must
// be row-major with dimension 2^arity and unitary within Epsilon.
func Custom(name string, arity int, matrix []complex128) (*Gate, error) {
	if arity <= 0 || arity > MaxQubits {
		return nil, fmt.Errorf("%w: gate arity %d", ErrInvalidDimension, arity)
	}
	return newGate(name, KindCustom, arity, matrix)
}

// Fixed gates, built and validated once at package init.
var (
	GateI = mustGate("I", KindI, 1, []complex128{
		1, 0,
		0, 1,
	})
	GateX = mustGate("X", KindX, 1, []complex128{
		0, 1,
		1, 0,
	})
	GateY = mustGate("Y", KindY, 1, []complex128{
		0, -1i,
		1i, 0,
	})
	GateZ = mustGate("Z", KindZ, 1, []complex128{
		1, 0,
		0, -1,
	})
	GateH = mustGate("H", KindH, 1, []complex128{
		invSqrt2, invSqrt2,
		invSqrt2, -invSqrt2,
	})
	GateS = mustGate("S", KindS, 1, []complex128{
		1, 0,
		0, 1i,
	})
	GateSdg = mustGate("Sdg", KindSdg, 1, []complex128{
		1, 0,
		0, -1i,
	})
	GateT = mustGate("T", KindT, 1, []complex128{
		1, 0,
		0, complex(invSqrt2, invSqrt2),
	})
	GateTdg = mustGate("Tdg", KindTdg, 1, []complex128{
		1, 0,
		0, complex(invSqrt2, -invSqrt2),
	})
	GateCNOT = mustGate("CNOT", KindCNOT, 2, []complex128{
		1, 0, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
		0, 1, 0, 0,
	})
	GateCZ = mustGate("CZ", KindCZ, 2, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	})
	GateSwap = mustGate("SWAP", KindSwap, 2, []complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	})
	GateToffoli = mustGate("CCX", KindToffoli, 3, []complex128{
		1, 0, 0, 0, 0, 0, 0, 0,
		0, 1, 0, 0, 0, 0, 0, 0,
		0, 0, 1, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 1,
		0, 0, 0, 0, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 0, 0, 1, 0,
		0, 0, 0, 1, 0, 0, 0, 0,
	})
)

// RX returns the rotation around the X axis by theta.
func RX(theta float64) *Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return mustGate(fmt.Sprintf("RX(%g)", theta), KindRX, 1, []complex128{
		c, s,
		s, c,
	})
}

// RY returns the rotation around the Y axis by theta.
func RY(theta float64) *Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return mustGate(fmt.Sprintf("RY(%g)", theta), KindRY, 1, []complex128{
		c, -s,
		s, c,
	})
}

// RZ returns the rotation around the Z axis by theta.
func RZ(theta float64) *Gate {
	p := cmplx.Exp(complex(0, theta/2))
	return mustGate(fmt.Sprintf("RZ(%g)", theta), KindRZ, 1, []complex128{
		cmplx.Conj(p), 0,
		0, p,
	})
}

// Lookup resolves a gate by name, accepting the QASM spellings used by
// ParseQASM ("cx", "sdg", "ccx", ...). Rotation gates take their angle
// from params; a missing angle defaults to 0 as an identity rotation.
// "p" and "u1" resolve to RZ, which matches the phase gate only up to
// the global phase e^(-i theta/2); indistinguishable on a bare state
// vector, but not interchangeable if controlled versions are added.
// Unknown names fail with ErrUnknownGate.
func Lookup(name string, params ...float64) (*Gate, error) {
	theta := 0.0
	if len(params) > 0 {
		theta = params[0]
	}
	switch strings.ToUpper(name) {
	case "I", "ID":
		return GateI, nil
	case "X":
		return GateX, nil
	case "Y":
		return GateY, nil
	case "Z":
		return GateZ, nil
	case "H":
		return GateH, nil
	case "S":
		return GateS, nil
	case "SDG":
		return GateSdg, nil
	case "T":
		return GateT, nil
	case "TDG":
		return GateTdg, nil
	case "RX":
		return RX(theta), nil
	case "RY":
		return RY(theta), nil
	case "RZ", "P", "U1": // p/u1 differ from RZ by a global phase only
		return RZ(theta), nil
	case "CX", "CNOT":
		return GateCNOT, nil
	case "CZ":
		return GateCZ, nil
	case "SWAP":
		return GateSwap, nil
	case "CCX", "TOFFOLI":
		return GateToffoli, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGate, name)
}
