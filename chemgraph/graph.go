//Package chemgraph analyzes the bond graph of molecules with gonum/graph.
package chemgraph

import (
	"sort"

	chem "github.com/moleview/moleview"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Topology is the bond graph of a molecule. Nodes are atoms, with the
//atom's index in the molecule as ID, and edges are bonds.
type Topology struct {
	*simple.UndirectedGraph
	mol chem.Atomer
}

//TopologyFromChem builds the bond graph of mol from the bonds
//of its atoms. Atom indexes must be filled.
func TopologyFromChem(mol chem.Atomer) *Topology {
	g := simple.NewUndirectedGraph()
	for i := 0; i < mol.Len(); i++ {
		g.AddNode(simple.Node(i))
	}
	for _, b := range chem.Bonds(mol) {
		f, t := int64(b.At1.Index()), int64(b.At2.Index())
		if f == t || g.HasEdgeBetween(f, t) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	}
	return &Topology{UndirectedGraph: g, mol: mol}
}

//NBonds returns the number of edges in the graph.
func (T *Topology) NBonds() int {
	return T.Edges().Len()
}

func nodeIndexes(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, v := range nodes {
		ret[i] = int(v.ID())
	}
	return ret
}

//Fragments returns the connected components of the graph (i.e. the separate
//molecules in the system) as slices of atom indexes. Each fragment is sorted
//and the fragments are ordered by their first atom.
func (T *Topology) Fragments() [][]int {
	cc := topo.ConnectedComponents(T.UndirectedGraph)
	ret := make([][]int, 0, len(cc))
	for _, v := range cc {
		f := nodeIndexes(v)
		sort.Ints(f)
		ret = append(ret, f)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

//Rings returns the number of independent rings in the system, i.e. the
//cyclomatic number of the bond graph.
func (T *Topology) Rings() int {
	return T.NBonds() - T.Nodes().Len() + len(topo.ConnectedComponents(T.UndirectedGraph))
}

//ShortestPath returns the atom indexes in the path with the fewest bonds
//going from atom i to atom j, both included, or nil if there
//is no such path.
func (T *Topology) ShortestPath(i, j int) []int {
	if T.Node(int64(i)) == nil || T.Node(int64(j)) == nil {
		return nil
	}
	sh := path.DijkstraFrom(simple.Node(i), T.UndirectedGraph)
	p, _ := sh.To(int64(j))
	if len(p) == 0 {
		return nil
	}
	return nodeIndexes(p)
}

//Atom returns the atom corresponding to the node with the given ID.
func (T *Topology) Atom(id int64) *chem.Atom {
	return T.mol.Atom(int(id))
}
