// Package depsort implements the module-dependency sorter: a
// topological order over user-defined modules, sub-circuits first and the
// top module last.
package depsort

import (
	"fmt"

	"girder/yosys2digitaljs/pkg/netlist"
)

// sink is the synthetic "∞" node every module has an edge into, guaranteeing
// it sorts after every real module.
const sink = ""

// Result is the outcome of sorting a netlist's module instantiation graph.
type Result struct {
	// Top is the unique module that is never instantiated by another.
	Top string
	// Subcircuits lists every other module, ordered so that a module is
	// never instantiated before it has itself appeared.
	Subcircuits []string
}

// Sort builds the module instantiation graph and returns the
// topological order it implies.  An error is returned if the instantiation
// graph contains a cycle.
func Sort(nl *netlist.Netlist) (Result, error) {
	names := nl.Modules.Keys()

	indegree := make(map[string]int, len(names)+1)
	adj := make(map[string][]string, len(names)+1)

	for _, name := range names {
		indegree[name] = 0
	}

	indegree[sink] = 0

	for _, name := range names {
		mod, _ := nl.Modules.Get(name)

		for _, cellName := range mod.Cells.Keys() {
			cell, _ := mod.Cells.Get(cellName)
			if !nl.Modules.Has(cell.Type) {
				continue
			}
			// edge (T -> M): the submodule type must be ranked before the
			// module that instantiates it.
			adj[cell.Type] = append(adj[cell.Type], name)
			indegree[name]++
		}
		// edge (M -> sink): every module is ranked before the sink.
		adj[name] = append(adj[name], sink)
		indegree[sink]++
	}

	queue := make([]string, 0, len(names)+1)

	for _, name := range names {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	if indegree[sink] == 0 {
		queue = append(queue, sink)
	}

	order := make([]string, 0, len(names)+1)

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		for _, m := range adj[n] {
			indegree[m]--
			if indegree[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	if len(order) != len(names)+1 {
		return Result{}, fmt.Errorf("depsort: module instantiation graph contains a cycle")
	}

	if order[len(order)-1] != sink {
		return Result{}, fmt.Errorf("depsort: internal error: sink did not sort last")
	}

	order = order[:len(order)-1]

	if len(order) == 0 {
		return Result{}, fmt.Errorf("depsort: netlist contains no modules")
	}

	top := order[len(order)-1]
	subcircuits := order[:len(order)-1]

	return Result{Top: top, Subcircuits: subcircuits}, nil
}
