package engine

// Mode selects one of the engine's execution strategies via
// command-line flags.
type Mode struct {
	Name  string
	Flags []string
}

// The three modes the engine supports. Invocation order follows
// Modes; the report column order is interpreted, unoptimized,
// optimized.
var (
	Interpreted    = Mode{Name: "interpreted", Flags: []string{"-i"}}
	JitOptimized   = Mode{Name: "jit-optimized", Flags: []string{"-j"}}
	JitUnoptimized = Mode{Name: "jit-unoptimized", Flags: []string{"-j", "-u"}}
)

// Modes returns all run modes in invocation order.
func Modes() []Mode {
	return []Mode{Interpreted, JitOptimized, JitUnoptimized}
}

// DefaultCommand is the launch command for the engine when none is
// configured. The engine ships as a cargo project, so the default
// builds and runs it in place.
func DefaultCommand() []string {
	return []string{"cargo", "run", "--release", "--"}
}
