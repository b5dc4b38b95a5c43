// Package rules compiles pile invariants written in Lua.
//
// A script is an expression or a chunk that returns a boolean. It sees two
// globals: count, the number of cards, and cards, an array (bottom first)
// of tables with the fields rank (1-13, 0 for jokers), suit ("heart", ...),
// face_up and joker.
//
//	count <= 1
//	count == 0 or cards[count].face_up
package rules

import (
	"errors"
	"fmt"
	"log"

	lua "github.com/yuin/gopher-lua"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/model"
)

var ErrNotBoolean = errors.New("invariant script did not return a boolean")

// Script is a compiled invariant. It owns a Lua state and is not safe for
// concurrent use.
type Script struct {
	src   string
	state *lua.LState
	fn    *lua.LFunction
}

// Compile prepares src for evaluation.
func Compile(src string) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	fn, err := L.LoadString("return " + src)
	if err != nil {
		fn, err = L.LoadString(src)
	}
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("compile invariant %q: %w", src, err)
	}
	return &Script{src: src, state: L, fn: fn}, nil
}

func (s *Script) Source() string { return s.src }

// Eval runs the script against cards.
func (s *Script) Eval(cards []*card.Card) (bool, error) {
	L := s.state
	list := L.CreateTable(len(cards), 0)
	for i, c := range cards {
		t := L.CreateTable(0, 4)
		L.SetField(t, "rank", lua.LNumber(c.Rank()))
		L.SetField(t, "suit", lua.LString(c.Suit().Singular()))
		L.SetField(t, "face_up", lua.LBool(c.IsFaceUp()))
		L.SetField(t, "joker", lua.LBool(c.IsJoker()))
		list.RawSetInt(i+1, t)
	}
	L.SetGlobal("cards", list)
	L.SetGlobal("count", lua.LNumber(len(cards)))

	L.Push(s.fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return false, fmt.Errorf("invariant %q: %w", s.src, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	if ret.Type() != lua.LTBool {
		return false, fmt.Errorf("invariant %q: %w (got %s)", s.src, ErrNotBoolean, ret.Type())
	}
	return lua.LVAsBool(ret), nil
}

// Invariant adapts the script to a pile invariant. Evaluation errors are
// logged and reject the mutation.
func (s *Script) Invariant() model.Invariant {
	return func(cards []*card.Card) bool {
		ok, err := s.Eval(cards)
		if err != nil {
			log.Printf("warn: %v", err)
			return false
		}
		return ok
	}
}

// Close releases the Lua state.
func (s *Script) Close() { s.state.Close() }
