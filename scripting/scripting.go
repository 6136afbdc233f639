// Package scripting lets a test author write StopWhen and InputSource
// callbacks as Lua functions instead of Go closures, the same way
// IntuitionEngine's assembler embeds gopher-lua as a host-callable macro
// layer rather than a general-purpose application language.
package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/rp2040pio/emulator/pioemu"
)

// Engine owns one Lua state and the compiled script loaded into it. It is
// not safe for concurrent use by multiple goroutines, matching the
// single-threaded cooperative model StopWhen/InputSource are called from.
type Engine struct {
	state *lua.LState
}

// New compiles source and returns an Engine ready to build callbacks from
// its globals.
func New(source string) (*Engine, error) {
	state := lua.NewState()
	if err := state.DoString(source); err != nil {
		state.Close()
		return nil, fmt.Errorf("scripting: loading script: %w", err)
	}
	return &Engine{state: state}, nil
}

// Close releases the underlying Lua state.
func (e *Engine) Close() { e.state.Close() }

// StopWhen looks up a global Lua function named fn and adapts it into a
// pioemu.StopWhen: fn(opcode, state_table) -> boolean.
func (e *Engine) StopWhen(fn string) pioemu.StopWhen {
	return func(opcode uint16, s pioemu.State) bool {
		result, err := e.call(fn, lua.LNumber(opcode), stateToTable(e.state, s))
		if err != nil {
			panic(fmt.Errorf("scripting: %s: %w", fn, err))
		}
		return lua.LVAsBool(result)
	}
}

// InputSource looks up a global Lua function named fn and adapts it into a
// pioemu.InputSource: fn(state_table) -> integer.
func (e *Engine) InputSource(fn string) pioemu.InputSource {
	return func(s pioemu.State) uint32 {
		result, err := e.call(fn, stateToTable(e.state, s))
		if err != nil {
			panic(fmt.Errorf("scripting: %s: %w", fn, err))
		}
		n, ok := result.(lua.LNumber)
		if !ok {
			panic(fmt.Errorf("scripting: %s: expected a number, got %s", fn, result.Type()))
		}
		return uint32(int64(n))
	}
}

func (e *Engine) call(fn string, args ...lua.LValue) (lua.LValue, error) {
	fv := e.state.GetGlobal(fn)
	if fv.Type() != lua.LTFunction {
		return nil, fmt.Errorf("no Lua function named %q", fn)
	}
	if err := e.state.CallByParam(lua.P{
		Fn:      fv,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		return nil, err
	}
	result := e.state.Get(-1)
	e.state.Pop(1)
	return result, nil
}

func stateToTable(state *lua.LState, s pioemu.State) *lua.LTable {
	t := state.NewTable()
	t.RawSetString("clock", lua.LNumber(s.Clock))
	t.RawSetString("pc", lua.LNumber(s.ProgramCounter))
	t.RawSetString("pin_values", lua.LNumber(s.PinValues))
	t.RawSetString("pin_directions", lua.LNumber(s.PinDirections))
	t.RawSetString("x", lua.LNumber(s.XRegister))
	t.RawSetString("y", lua.LNumber(s.YRegister))
	return t
}
