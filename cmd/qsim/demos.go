package main

import (
	"fmt"
	"math/bits"
	"sort"

	"qsim"
)

// demo is a named example circuit, either a QASM source or a
// programmatic run function for algorithms that need an oracle.
type demo struct {
	desc string
	qasm string
	run  func(shots int, seed int64) (*qsim.Tally, error)
}

const bellQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];
`

const ghzQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

h q[0];
cx q[0], q[1];
cx q[1], q[2];
measure q[0] -> c[0];
measure q[1] -> c[1];
measure q[2] -> c[2];
`

// Teleport the state H|0> of qubit 0 onto qubit 2 through the
// entangled pair (1, 2) and the two classical correction bits.
const teleportationQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c[3];

h q[0];
h q[1];
cx q[1], q[2];
cx q[0], q[1];
h q[0];
measure q[0] -> c[0];
measure q[1] -> c[1];
if (c[0]==1) z q[2];
if (c[1]==1) x q[2];
measure q[2] -> c[2];
`

// Superdense coding of the two classical bits 11: one entangled pair
// carries both bits, decoded deterministically.
const superdenseQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
x q[0];
z q[0];
cx q[0], q[1];
h q[0];
measure q[0] -> c[0];
measure q[1] -> c[1];
`

var demos = map[string]demo{
	"bell": {
		desc: "Bell state: (|00> + |11>)/sqrt(2)",
		qasm: bellQASM,
	},
	"ghz": {
		desc: "GHZ state: (|000> + |111>)/sqrt(2)",
		qasm: ghzQASM,
	},
	"teleportation": {
		desc: "Quantum teleportation of H|0> onto qubit 2",
		qasm: teleportationQASM,
	},
	"superdense": {
		desc: "Superdense coding of the classical bits 11",
		qasm: superdenseQASM,
	},
	"deutsch": {
		desc: "Deutsch's algorithm on a balanced one-bit function",
		run:  runDeutsch,
	},
	"bernstein-vazirani": {
		desc: "Bernstein-Vazirani recovery of the secret 1101",
		run:  runBernsteinVazirani,
	},
	"simon": {
		desc: "Simon's algorithm: every outcome is orthogonal to the period 110",
		run:  runSimon,
	},
}

// demoNames returns the demo names in stable order.
func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// runDemo executes a named demo and returns its tally.
func runDemo(name string, shots int, seed int64) (*qsim.Tally, error) {
	d, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("unknown demo %q", name)
	}
	if d.run != nil {
		return d.run(shots, seed)
	}
	var c qsim.Circuit
	if err := c.ParseQASM(d.qasm); err != nil {
		return nil, err
	}
	return c.RunShots(shots, seed)
}

// runDeutsch decides with one oracle query whether f is constant or
// balanced; qubit 0 measures 1 for a balanced f. Here f(x) = x.
func runDeutsch(shots int, seed int64) (*qsim.Tally, error) {
	oracle, err := qsim.OracleGate(func(x uint64) bool { return x&1 != 0 }, 1)
	if err != nil {
		return nil, err
	}
	reg, err := qsim.New(2, seed)
	if err != nil {
		return nil, err
	}
	tally := qsim.NewTally(1)
	for i := 0; i < shots; i++ {
		reg.Reset()
		if err := reg.X(1); err != nil {
			return nil, err
		}
		if err := reg.H(0); err != nil {
			return nil, err
		}
		if err := reg.H(1); err != nil {
			return nil, err
		}
		if err := reg.ApplyGate(oracle, 0, 1); err != nil {
			return nil, err
		}
		if err := reg.H(0); err != nil {
			return nil, err
		}
		out, err := reg.Measure(0)
		if err != nil {
			return nil, err
		}
		tally.Add(out.Bits)
	}
	return tally, nil
}

// runBernsteinVazirani recovers the secret bitstring 1101 from a
// single query to the dot-product oracle f(x) = x.s mod 2.
func runBernsteinVazirani(shots int, seed int64) (*qsim.Tally, error) {
	const secret = 0b1101
	const inputs = 4

	oracle, err := qsim.OracleGate(func(x uint64) bool {
		return bits.OnesCount64(x&secret)%2 == 1
	}, inputs)
	if err != nil {
		return nil, err
	}
	reg, err := qsim.New(inputs+1, seed)
	if err != nil {
		return nil, err
	}
	targets := make([]int, inputs+1)
	for i := range targets {
		targets[i] = i
	}
	tally := qsim.NewTally(inputs)
	for i := 0; i < shots; i++ {
		reg.Reset()
		if err := reg.X(inputs); err != nil {
			return nil, err
		}
		for q := 0; q <= inputs; q++ {
			if err := reg.H(q); err != nil {
				return nil, err
			}
		}
		if err := reg.ApplyGate(oracle, targets...); err != nil {
			return nil, err
		}
		for q := 0; q < inputs; q++ {
			if err := reg.H(q); err != nil {
				return nil, err
			}
		}
		out, err := reg.Measure(0, 1, 2, 3)
		if err != nil {
			return nil, err
		}
		tally.Add(out.Bits)
	}
	return tally, nil
}

// runSimon samples the input register of Simon's circuit for a 2-to-1
// function with hidden period 110. Each outcome y satisfies y.s = 0
// mod 2; collecting n-1 independent ones pins the period classically.
func runSimon(shots int, seed int64) (*qsim.Tally, error) {
	const secret = 0b110
	const n = 3

	// Both x and x^secret map to the smaller of the pair.
	oracle, err := qsim.OracleGateN(func(x uint64) uint64 {
		if p := x ^ secret; p < x {
			return p
		}
		return x
	}, n, n)
	if err != nil {
		return nil, err
	}
	reg, err := qsim.New(2*n, seed)
	if err != nil {
		return nil, err
	}
	targets := make([]int, 2*n)
	for i := range targets {
		targets[i] = i
	}
	tally := qsim.NewTally(n)
	for i := 0; i < shots; i++ {
		reg.Reset()
		for q := 0; q < n; q++ {
			if err := reg.H(q); err != nil {
				return nil, err
			}
		}
		if err := reg.ApplyGate(oracle, targets...); err != nil {
			return nil, err
		}
		for q := 0; q < n; q++ {
			if err := reg.H(q); err != nil {
				return nil, err
			}
		}
		out, err := reg.Measure(targets[:n]...)
		if err != nil {
			return nil, err
		}
		tally.Add(out.Bits)
	}
	return tally, nil
}
