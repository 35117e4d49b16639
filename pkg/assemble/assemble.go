// Package assemble implements the top-level assembler: it runs the
// module-dependency sorter, converts every module, and attaches every
// module but the top one into the top module's Subcircuits map.
package assemble

import (
	"fmt"
	"strings"

	"girder/yosys2digitaljs/pkg/convert"
	"girder/yosys2digitaljs/pkg/convert/depsort"
	"girder/yosys2digitaljs/pkg/convert/portmap"
	"girder/yosys2digitaljs/pkg/digitaljs"
	"girder/yosys2digitaljs/pkg/netlist"
)

// Config carries the caller-tunable knobs of an assembly run.
type Config struct {
	// TopModule overrides automatic top-module selection.  Empty means
	// "the unique module never instantiated by another".
	TopModule string
	// Strict promotes undriven-net warnings to a fatal error.
	Strict bool
}

// Result is the assembled top-level output graph, plus any diagnostics
// raised converting any of its modules.
type Result struct {
	Top      *digitaljs.Module
	Warnings []string
}

// Run converts every module in nl and assembles them into one top-level
// graph rooted at the module that is never itself instantiated (or at
// cfg.TopModule, when set).
func Run(nl *netlist.Netlist, cfg Config) (Result, error) {
	if err := nl.Validate(); err != nil {
		return Result{}, err
	}

	order, err := depsort.Sort(nl)
	if err != nil {
		return Result{}, err
	}

	topName := order.Top
	subNames := order.Subcircuits

	if cfg.TopModule != "" && cfg.TopModule != order.Top {
		if !nl.Modules.Has(cfg.TopModule) {
			return Result{}, fmt.Errorf("assemble: no such module %q", cfg.TopModule)
		}

		topName = cfg.TopModule
		subNames = make([]string, 0, len(order.Subcircuits))

		for _, name := range order.Subcircuits {
			if name != cfg.TopModule {
				subNames = append(subNames, name)
			}
		}

		subNames = append(subNames, order.Top)
	}

	pm := portmap.Build(nl)

	top, err := convert.Module(nl, topName, pm)
	if err != nil {
		return Result{}, fmt.Errorf("assemble: converting top module %q: %w", topName, err)
	}

	top.Module.Subcircuits = make(map[string]*digitaljs.Module, len(subNames))

	warnings := append([]string(nil), top.Warnings...)

	for _, name := range subNames {
		sub, err := convert.Module(nl, name, pm)
		if err != nil {
			return Result{}, fmt.Errorf("assemble: converting sub-circuit %q: %w", name, err)
		}

		top.Module.Subcircuits[name] = sub.Module
		warnings = append(warnings, sub.Warnings...)
	}

	if cfg.Strict && len(warnings) > 0 {
		return Result{}, fmt.Errorf("assemble: %d undriven net(s): %s", len(warnings), strings.Join(warnings, "; "))
	}

	return Result{Top: top.Module, Warnings: warnings}, nil
}
