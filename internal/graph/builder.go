// Package graph builds the deduplicated relationship graph shown on the
// schema explorer, with a deterministic layout so repeated extractions of the
// same schema render identically.
package graph

import (
	"math"
	"sort"
	"strings"

	"github.com/The-vyanshuDev/datalens-backend/internal/models"
)

// Logical canvas the layout targets. The frontend scales this box to the
// on-screen viewport.
const (
	CanvasWidth  = 1080.0
	CanvasHeight = 680.0
)

const leadersSize = 8

type Node struct {
	ID            string  `json:"id"`
	ColumnCount   int     `json:"columnCount"`
	PKCount       int     `json:"pkCount"`
	FKCount       int     `json:"fkCount"`
	RelationCount int     `json:"relationCount"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

type Edge struct {
	Source          string   `json:"source"`
	Target          string   `json:"target"`
	LocalColumns    []string `json:"localColumns"`
	ReferredColumns []string `json:"referredColumns"`
}

type SchemaGraph struct {
	Nodes   []Node  `json:"nodes"`
	Edges   []Edge  `json:"edges"`
	Leaders []Node  `json:"leaders"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Build constructs the graph from the schema document: one node per table,
// one edge per distinct foreign key. Edges whose referred table has no node
// are dropped.
func Build(schema []models.SchemaTable) SchemaGraph {
	g := SchemaGraph{
		Nodes:  make([]Node, 0, len(schema)),
		Width:  CanvasWidth,
		Height: CanvasHeight,
	}

	nodeIndex := make(map[string]int, len(schema))
	byLower := make(map[string]string, len(schema))
	for _, table := range schema {
		if _, dup := nodeIndex[table.TableName]; dup {
			continue
		}
		nodeIndex[table.TableName] = len(g.Nodes)
		byLower[strings.ToLower(table.TableName)] = table.TableName
		g.Nodes = append(g.Nodes, Node{
			ID:          table.TableName,
			ColumnCount: len(table.Columns),
			PKCount:     len(table.PrimaryKeys),
			FKCount:     len(table.ForeignKeys),
		})
	}

	layoutRing(g.Nodes)

	seen := make(map[string]bool)
	for _, table := range schema {
		for _, fk := range table.ForeignKeys {
			target := resolveTarget(fk.ReferredTable, byLower)
			if _, known := nodeIndex[target]; !known {
				continue
			}
			edge := Edge{
				Source:          table.TableName,
				Target:          target,
				LocalColumns:    fk.Columns,
				ReferredColumns: fk.ReferredColumns,
			}
			sig := edge.Source + "|" + edge.Target + "|" +
				strings.Join(edge.LocalColumns, ",") + "|" +
				strings.Join(edge.ReferredColumns, ",")
			if seen[sig] {
				continue
			}
			seen[sig] = true
			g.Edges = append(g.Edges, edge)

			g.Nodes[nodeIndex[edge.Source]].RelationCount++
			g.Nodes[nodeIndex[edge.Target]].RelationCount++
		}
	}

	g.Leaders = topByRelations(g.Nodes)
	return g
}

// resolveTarget matches the referred table against known node ids ignoring
// case, falling back to the raw string (the caller then drops the edge if no
// node exists under that name).
func resolveTarget(referred string, byLower map[string]string) string {
	if id, ok := byLower[strings.ToLower(referred)]; ok {
		return id
	}
	return referred
}

// layoutRing places nodes on a jittered ring around the canvas center. The
// position is a pure function of the node's ordinal index and the node
// count, so the layout is reproducible from table order alone.
func layoutRing(nodes []Node) {
	centerX, centerY := CanvasWidth/2, CanvasHeight/2
	n := len(nodes)
	if n == 0 {
		return
	}
	radius := math.Min(280, 160+float64(n)*7)
	for i := range nodes {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		wave := 26 * math.Sin(1.7*float64(i))
		nodes[i].X = centerX + (radius+wave)*math.Cos(angle)
		nodes[i].Y = centerY + (radius+wave)*math.Sin(angle)
	}
}

func topByRelations(nodes []Node) []Node {
	leaders := make([]Node, len(nodes))
	copy(leaders, nodes)
	sort.SliceStable(leaders, func(i, j int) bool {
		return leaders[i].RelationCount > leaders[j].RelationCount
	})
	if len(leaders) > leadersSize {
		leaders = leaders[:leadersSize]
	}
	return leaders
}
