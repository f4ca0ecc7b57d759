package structure

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleTree() *Node {
	return &Node{Kind: KindModule, Name: "m", Children: []*Node{
		{Kind: KindClass, Name: "A", Line: 1, Depth: 1, Children: []*Node{
			{Kind: KindMethod, Name: "a", Line: 2, Depth: 2},
			{Kind: KindMethod, Name: "b", Line: 4, Depth: 2, Children: []*Node{
				{Kind: KindIf, Name: "if x:", Line: 5, Depth: 3},
			}},
		}},
		{Kind: KindFunction, Name: "f", Line: 8, Depth: 1},
	}}
}

func TestNodeWalkOrder(t *testing.T) {
	var names []string
	sampleTree().Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	if got, want := strings.Join(names, ","), "m,A,a,b,if x:,f"; got != want {
		t.Errorf("walk order = %s, want %s", got, want)
	}
}

func TestNodeWalkSkipsChildren(t *testing.T) {
	var names []string
	sampleTree().Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return n.Kind != KindClass
	})
	if got, want := strings.Join(names, ","), "m,A,f"; got != want {
		t.Errorf("walk order = %s, want %s", got, want)
	}
}

func TestNodeCounts(t *testing.T) {
	root := sampleTree()
	if got := root.Len(); got != 6 {
		t.Errorf("Len = %d, want 6", got)
	}
	if got := root.Elements(); got != 5 {
		t.Errorf("Elements = %d, want 5", got)
	}
	if got := root.Count(KindMethod); got != 2 {
		t.Errorf("Count(method) = %d, want 2", got)
	}
	counts := root.Counts()
	if counts[KindClass] != 1 || counts[KindFunction] != 1 || counts[KindIf] != 1 {
		t.Errorf("Counts = %v", counts)
	}
	if _, ok := counts[KindWhile]; ok {
		t.Error("absent kinds should not appear in Counts")
	}

	var nilNode *Node
	if nilNode.Elements() != 0 || nilNode.Len() != 0 {
		t.Error("nil tree should be empty")
	}
}

func TestKind(t *testing.T) {
	for _, k := range Kinds {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil || back != k {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}

	if got := Kind(42).String(); got != "kind(42)" {
		t.Errorf("String = %q", got)
	}
	var k Kind
	if err := k.UnmarshalText([]byte("lambda")); err == nil {
		t.Error("expected error for unknown kind")
	}
	if !KindWhile.IsControlFlow() || KindMethod.IsControlFlow() {
		t.Error("IsControlFlow mismatch")
	}
	if !KindMethod.IsCallable() || KindClass.IsCallable() {
		t.Error("IsCallable mismatch")
	}
}

func TestNodeJSON(t *testing.T) {
	data, err := json.Marshal(sampleTree().Children[1])
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"kind":"function","name":"f","line":8,"depth":1}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}
