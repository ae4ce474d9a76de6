package models

// OrgNode is one entry in the org forest document. ParentAgentName is
// denormalized: it must equal the key of the actual parent node, or be
// nil for roots. Children are ordered; Position is the node's insertion
// index among its siblings.
type OrgNode struct {
	AgentName       string     `json:"agentName"`
	ParentAgentName *string    `json:"parentAgentName"`
	Position        int        `json:"position"`
	Children        []*OrgNode `json:"children"`
}

// OrgDoc is the whole-structure org.json document: a forest of rooted
// trees. Node agent names may reference agents not (yet) present in the
// agent store.
type OrgDoc struct {
	Roots []*OrgNode `json:"roots"`
}
