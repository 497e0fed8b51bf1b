package domain

import "testing"

func TestMatches_PrefersID(t *testing.T) {
	a := &Node{Identifiable: Identifiable{ID: "1", URL: "https://a.example/x"}}
	b := &Node{Identifiable: Identifiable{ID: "2", URL: "https://a.example/x"}}

	if Matches(a, b) {
		t.Error("nodes with different ids should not match even with equal urls")
	}
}

func TestMatches_FallsBackToURL(t *testing.T) {
	a := &Node{Identifiable: Identifiable{URL: "https://a.example/x"}}
	b := &Node{Identifiable: Identifiable{ID: "2", URL: "https://a.example/x"}}

	if !Matches(a, b) {
		t.Error("nodes should match by url when one side has no id")
	}
}

func TestMatches_FallsBackToName(t *testing.T) {
	a := &Node{Identifiable: Identifiable{Name: "Great Plugin"}}
	b := &Node{Identifiable: Identifiable{Name: "Great Plugin"}}

	if !Matches(a, b) {
		t.Error("nodes should match by name when neither id nor url is set")
	}
}

func TestMatches_RequiresSameKind(t *testing.T) {
	n := &Node{Identifiable: Identifiable{ID: "7"}}
	m := &Market{Identifiable: Identifiable{ID: "7"}}

	if Matches(n, m) {
		t.Error("a node should never match a market")
	}
}

func TestEqualsByID_EmptyIDNeverMatches(t *testing.T) {
	a := &Category{}
	b := &Category{}

	if EqualsByID(a, b) {
		t.Error("two empty ids should not be considered equal")
	}
}

func TestEntityKey(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"id only", &Node{Identifiable: Identifiable{ID: "123"}}, "Node:123"},
		{"url only", &Node{Identifiable: Identifiable{URL: "https://m.example/content/x"}}, "Node:https://m.example/content/x"},
		{"id wins over url", &Node{Identifiable: Identifiable{ID: "123", URL: "https://m.example/content/x"}}, "Node:123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntityKey(tt.node); got != tt.want {
				t.Errorf("EntityKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContentKey(t *testing.T) {
	n := &Node{Identifiable: Identifiable{ID: "55"}}

	got := n.ContentKey("https://marketplace.example.org")

	if got != "Node:https://marketplace.example.org/node/55" {
		t.Errorf("ContentKey = %q", got)
	}

	if (&Node{}).ContentKey("https://marketplace.example.org") != "" {
		t.Error("ContentKey should be empty without an id")
	}
}

func TestInstallable(t *testing.T) {
	if (&Node{}).Installable() {
		t.Error("node without install units should not be installable")
	}

	n := &Node{IUs: []InstallUnit{{ID: "org.example.feature"}}}
	if !n.Installable() {
		t.Error("node with install units should be installable")
	}
}
