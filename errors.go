package qsim

import "errors"

// Errors returned by the simulator. All of them indicate contract
// violations by the caller or (for the last two) a corrupted state
// vector; none are transient.
var (
	// ErrInvalidDimension reports a register size outside [1, MaxQubits].
	ErrInvalidDimension = errors.New("invalid register dimension")

	// ErrUnknownGate reports a gate name with no library entry.
	ErrUnknownGate = errors.New("unknown gate")

	// ErrNonUnitaryGate reports a matrix that failed the unitarity check
	// at registration time. Such a gate is never installed.
	ErrNonUnitaryGate = errors.New("non-unitary gate matrix")

	// ErrInvalidQubitIndex reports a target outside [0, n) or a qubit
	// listed twice in one operation.
	ErrInvalidQubitIndex = errors.New("invalid qubit index")

	// ErrGateArityMismatch reports a gate applied to the wrong number of
	// target qubits for its matrix dimension.
	ErrGateArityMismatch = errors.New("gate arity mismatch")

	// ErrUnnormalizedState reports a state vector whose total
	// probability has drifted away from 1 beyond Epsilon.
	ErrUnnormalizedState = errors.New("state vector not normalized")

	// ErrDegenerateState reports a state vector with ~0 total
	// probability, e.g. after a defective collapse.
	ErrDegenerateState = errors.New("degenerate state vector")
)
