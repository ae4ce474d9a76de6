package core

import (
	"errors"
	"testing"

	"github.com/northgate-labs/agenthq/internal/storage"
)

func newTestOrg(t *testing.T) OrgManager {
	t.Helper()
	return NewOrgManager(storage.NewOrgStore(t.TempDir()))
}

func strptr(s string) *string { return &s }

func TestOrgManager_SetParentRoot(t *testing.T) {
	org := newTestOrg(t)

	if err := org.SetParent("ceo", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parent, err := org.GetParent("ceo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent != nil {
		t.Errorf("root should have no parent, got %v", *parent)
	}

	doc, err := org.Chart()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Roots) != 1 || doc.Roots[0].AgentName != "ceo" {
		t.Errorf("expected single root ceo, got %+v", doc.Roots)
	}
}

func TestOrgManager_SetParentChild(t *testing.T) {
	org := newTestOrg(t)

	if err := org.SetParent("ceo", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := org.SetParent("eng", strptr("ceo")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := org.SetParent("ops", strptr("ceo")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parent, err := org.GetParent("eng")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent == nil || *parent != "ceo" {
		t.Errorf("expected parent ceo, got %v", parent)
	}

	children, err := org.GetChildren("ceo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(children) != 2 || children[0] != "eng" || children[1] != "ops" {
		t.Errorf("expected [eng ops], got %v", children)
	}
}

func TestOrgManager_SetParentUnknownParentFallsBackToRoot(t *testing.T) {
	org := newTestOrg(t)

	if err := org.SetParent("orphan", strptr("nobody")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parent, err := org.GetParent("orphan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent != nil {
		t.Errorf("unknown parent should yield a root node, got parent %v", *parent)
	}
}

func TestOrgManager_ReparentMovesSubtree(t *testing.T) {
	org := newTestOrg(t)

	// ceo -> eng -> dev; ops is another root.
	mustSetParent(t, org, "ceo", nil)
	mustSetParent(t, org, "eng", strptr("ceo"))
	mustSetParent(t, org, "dev", strptr("eng"))
	mustSetParent(t, org, "ops", nil)

	// Move eng (and its subtree) under ops.
	if err := org.SetParent("eng", strptr("ops")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parent, _ := org.GetParent("eng")
	if parent == nil || *parent != "ops" {
		t.Errorf("eng should report to ops, got %v", parent)
	}
	// dev moved along with eng.
	devParent, _ := org.GetParent("dev")
	if devParent == nil || *devParent != "eng" {
		t.Errorf("dev should still report to eng, got %v", devParent)
	}
	ceoChildren, _ := org.GetChildren("ceo")
	if len(ceoChildren) != 0 {
		t.Errorf("ceo should have no children left, got %v", ceoChildren)
	}
}

func TestOrgManager_SetParentRejectsCycle(t *testing.T) {
	org := newTestOrg(t)

	mustSetParent(t, org, "ceo", nil)
	mustSetParent(t, org, "eng", strptr("ceo"))
	mustSetParent(t, org, "dev", strptr("eng"))

	// ceo under its own grandchild.
	err := org.SetParent("ceo", strptr("dev"))
	if !errors.Is(err, ErrOrgCycle) {
		t.Fatalf("expected ErrOrgCycle, got %v", err)
	}

	// Self-parenting is the degenerate cycle.
	err = org.SetParent("eng", strptr("eng"))
	if !errors.Is(err, ErrOrgCycle) {
		t.Fatalf("expected ErrOrgCycle for self-parent, got %v", err)
	}

	// The rejected move left the forest untouched.
	parent, _ := org.GetParent("ceo")
	if parent != nil {
		t.Errorf("ceo should still be a root, got parent %v", *parent)
	}
}

func TestOrgManager_RemoveAgentPromotesChildren(t *testing.T) {
	org := newTestOrg(t)

	// ceo -> eng -> {dev1, dev2}; dev1 -> intern.
	mustSetParent(t, org, "ceo", nil)
	mustSetParent(t, org, "eng", strptr("ceo"))
	mustSetParent(t, org, "dev1", strptr("eng"))
	mustSetParent(t, org, "dev2", strptr("eng"))
	mustSetParent(t, org, "intern", strptr("dev1"))

	if err := org.RemoveAgent("eng"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Direct reports escalate one level, in order.
	ceoChildren, _ := org.GetChildren("ceo")
	if len(ceoChildren) != 2 || ceoChildren[0] != "dev1" || ceoChildren[1] != "dev2" {
		t.Errorf("expected ceo children [dev1 dev2], got %v", ceoChildren)
	}
	// Deeper levels are untouched.
	internParent, _ := org.GetParent("intern")
	if internParent == nil || *internParent != "dev1" {
		t.Errorf("intern should still report to dev1, got %v", internParent)
	}
	// The removed node is gone.
	if children, _ := org.GetChildren("eng"); children != nil {
		t.Errorf("removed node should have no presence, got children %v", children)
	}
}

func TestOrgManager_RemoveRootPromotesChildrenToRoots(t *testing.T) {
	org := newTestOrg(t)

	mustSetParent(t, org, "ceo", nil)
	mustSetParent(t, org, "eng", strptr("ceo"))
	mustSetParent(t, org, "ops", strptr("ceo"))

	if err := org.RemoveAgent("ceo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := org.Chart()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(doc.Roots))
	}
	if doc.Roots[0].AgentName != "eng" || doc.Roots[1].AgentName != "ops" {
		t.Errorf("expected roots [eng ops], got %s, %s", doc.Roots[0].AgentName, doc.Roots[1].AgentName)
	}
}

func TestOrgManager_RemoveAbsentAgentIsNoop(t *testing.T) {
	org := newTestOrg(t)

	mustSetParent(t, org, "ceo", nil)
	if err := org.RemoveAgent("nobody"); err != nil {
		t.Fatalf("removing absent agent should not error: %v", err)
	}

	doc, _ := org.Chart()
	if len(doc.Roots) != 1 {
		t.Errorf("forest should be unchanged, got %d roots", len(doc.Roots))
	}
}

func TestOrgManager_GetParentUnknownAgent(t *testing.T) {
	org := newTestOrg(t)

	parent, err := org.GetParent("nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent != nil {
		t.Errorf("unknown agent should have nil parent, got %v", *parent)
	}
}

func mustSetParent(t *testing.T, org OrgManager, name string, parent *string) {
	t.Helper()
	if err := org.SetParent(name, parent); err != nil {
		t.Fatalf("SetParent(%s) failed: %v", name, err)
	}
}
