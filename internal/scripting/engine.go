package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/l1jgo/sysmgr/internal/core/discovery"
	"github.com/l1jgo/sysmgr/internal/core/event"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrClosed is returned when instantiating a script system after Close.
var ErrClosed = errors.New("script engine closed")

// Engine wraps a single gopher-lua VM holding scripted systems.
// Single-goroutine access only (game loop).
//
// Scripts declare systems with:
//
//	register_system{
//	  name = "Weather",          -- required
//	  tags = {"system"},         -- optional, defaults to {"system"}
//	  phase = 2,                 -- optional update phase
//	  initialise = function() end,
//	  update = function(dt) end, -- dt in seconds
//	  render = function(alpha) end,
//	  on_signal = function(name, payload) end,
//	}
//
// The Go type of each instance exposes exactly the capabilities the
// script defines.
type Engine struct {
	vm     *lua.LState
	log    *zap.Logger
	bus    *event.Bus
	defs   []*scriptDef
	byName map[string]*scriptDef
	source string
	closed bool
}

// NewEngine creates a Lua engine and loads every .lua file in dir.
// A missing dir yields an engine with no systems.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(dir); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, byName: make(map[string]*scriptDef)}
	vm.SetGlobal("register_system", vm.NewFunction(e.luaRegisterSystem))
	vm.SetGlobal("emit_signal", vm.NewFunction(e.luaEmitSignal))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))
	return e
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		e.source = path
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	e.source = ""
	return nil
}

// LoadString runs src as a script named name.
func (e *Engine) LoadString(name, src string) error {
	e.source = name
	defer func() { e.source = "" }()
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// AttachBus sets the bus used by emit_signal.
func (e *Engine) AttachBus(b *event.Bus) {
	e.bus = b
}

// Count returns the number of declared script systems.
func (e *Engine) Count() int {
	return len(e.defs)
}

// FindTaggedTypes returns one descriptor per script system carrying tag,
// in declaration order.
func (e *Engine) FindTaggedTypes(tag string) []discovery.TypeDescriptor {
	out := make([]discovery.TypeDescriptor, 0, len(e.defs))
	for _, def := range e.defs {
		d := discovery.TypeDescriptor{
			Name: def.name,
			Type: reflect.TypeOf(def.wrap(&scriptSystem{eng: e, def: def})),
			Tags: def.tags,
			New:  func() (any, error) { return e.instantiate(def) },
		}
		if d.HasTag(tag) {
			out = append(out, d)
		}
	}
	return out
}

func (e *Engine) instantiate(def *scriptDef) (any, error) {
	if e.closed {
		return nil, fmt.Errorf("%s: %w", def.name, ErrClosed)
	}
	return def.wrap(&scriptSystem{eng: e, def: def}), nil
}

// Close releases the VM. Script system instances become inert.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.vm.Close()
}

// call invokes fn protected; failures are logged, never propagated.
func (e *Engine) call(def *scriptDef, hook string, fn *lua.LFunction, args ...lua.LValue) {
	if fn == nil || e.closed {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua system hook error",
			zap.String("system", def.name),
			zap.String("hook", hook),
			zap.String("source", def.source),
			zap.Error(err))
	}
}

func (e *Engine) luaRegisterSystem(L *lua.LState) int {
	t := L.CheckTable(1)
	name := lua.LVAsString(t.RawGetString("name"))
	if name == "" {
		L.ArgError(1, "register_system: name is required")
		return 0
	}
	if _, dup := e.byName[name]; dup {
		L.ArgError(1, "register_system: duplicate system "+name)
		return 0
	}

	def := &scriptDef{
		name:       name,
		source:     e.source,
		phase:      int(lua.LVAsNumber(t.RawGetString("phase"))),
		initialise: luaFunc(t, "initialise"),
		update:     luaFunc(t, "update"),
		render:     luaFunc(t, "render"),
		onSignal:   luaFunc(t, "on_signal"),
	}
	if _, ok := t.RawGetString("phase").(lua.LNumber); !ok {
		def.phase = -1
	}
	if tags, ok := t.RawGetString("tags").(*lua.LTable); ok {
		tags.ForEach(func(_, v lua.LValue) {
			def.tags = append(def.tags, v.String())
		})
	} else {
		def.tags = []string{discovery.TagSystem}
	}

	e.defs = append(e.defs, def)
	e.byName[name] = def
	return 0
}

func (e *Engine) luaEmitSignal(L *lua.LState) int {
	name := L.CheckString(1)
	payload := L.OptString(2, "")
	if e.bus == nil {
		e.log.Warn("emit_signal without bus", zap.String("signal", name))
		return 0
	}
	event.Emit(e.bus, event.Signal{Name: name, Payload: payload})
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

func luaFunc(t *lua.LTable, key string) *lua.LFunction {
	fn, _ := t.RawGetString(key).(*lua.LFunction)
	return fn
}
