package measure

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// measureGlobal is the function name a measurement script must define.
const measureGlobal = "measure"

// LuaMeasurer runs a user-supplied Lua script to measure text. The
// script defines a global function measure(text) returning a number.
// A measurer owns one Lua state and is not safe for concurrent use.
type LuaMeasurer struct {
	L *lua.LState
}

// NewLuaMeasurer loads a measurement script from a file.
func NewLuaMeasurer(path string) (*LuaMeasurer, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading measure script %s: %w", path, err)
	}
	return newLuaMeasurer(L)
}

// NewLuaMeasurerFromString loads a measurement script from source text.
func NewLuaMeasurerFromString(script string) (*LuaMeasurer, error) {
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading measure script: %w", err)
	}
	return newLuaMeasurer(L)
}

func newLuaMeasurer(L *lua.LState) (*LuaMeasurer, error) {
	if _, ok := L.GetGlobal(measureGlobal).(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("measure script does not define a %q function", measureGlobal)
	}
	return &LuaMeasurer{L: L}, nil
}

// Measure calls the script's measure function.
func (m *LuaMeasurer) Measure(text string) (float64, error) {
	err := m.L.CallByParam(lua.P{
		Fn:      m.L.GetGlobal(measureGlobal),
		NRet:    1,
		Protect: true,
	}, lua.LString(text))
	if err != nil {
		return 0, fmt.Errorf("measure(%q): %w", text, err)
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("measure(%q): script returned %s, want number", text, ret.Type())
	}
	return float64(n), nil
}

// Func adapts the measurer to the layout signature. Script errors
// measure as zero, which layout treats as unmeasurable and degrades
// gracefully.
func (m *LuaMeasurer) Func() Func {
	return func(text string) float64 {
		w, err := m.Measure(text)
		if err != nil || w < 0 {
			return 0
		}
		return w
	}
}

// Close releases the Lua state.
func (m *LuaMeasurer) Close() {
	m.L.Close()
}
