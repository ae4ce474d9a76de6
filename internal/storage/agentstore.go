package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/northgate-labs/agenthq/pkg/models"
)

// AgentStore manages agent records. Each agent owns a named subdirectory
// under agents/ holding its config.json alongside auxiliary files such as
// the results mailbox.
type AgentStore interface {
	Save(agent *models.Agent) error
	Get(name string) (*models.Agent, error)
	List() ([]*models.Agent, error)
	Delete(name string) error
	ResultsDir(name string) string
}

type fileAgentStore struct {
	basePath string
}

// NewAgentStore creates an AgentStore rooted at basePath/agents.
func NewAgentStore(basePath string) AgentStore {
	return &fileAgentStore{basePath: basePath}
}

func (s *fileAgentStore) agentDir(name string) string {
	return filepath.Join(s.basePath, "agents", name)
}

func (s *fileAgentStore) configPath(name string) string {
	return filepath.Join(s.agentDir(name), "config.json")
}

// ResultsDir returns the agent's delegation-results mailbox directory.
// The directory is not created until a result is delivered.
func (s *fileAgentStore) ResultsDir(name string) string {
	return filepath.Join(s.agentDir(name), "results")
}

func (s *fileAgentStore) Save(agent *models.Agent) error {
	if agent.Name == "" {
		return fmt.Errorf("saving agent: name must not be empty")
	}
	if err := os.MkdirAll(s.agentDir(agent.Name), 0o750); err != nil {
		return fmt.Errorf("saving agent %s: creating directory: %w", agent.Name, err)
	}
	data, err := json.MarshalIndent(agent, "", "  ")
	if err != nil {
		return fmt.Errorf("saving agent %s: marshaling: %w", agent.Name, err)
	}
	if err := WriteFileAtomic(s.configPath(agent.Name), data, 0o600); err != nil {
		return fmt.Errorf("saving agent %s: %w", agent.Name, err)
	}
	return nil
}

// Get returns the agent with the given name, or (nil, nil) if no such
// agent has been saved.
func (s *fileAgentStore) Get(name string) (*models.Agent, error) {
	data, err := os.ReadFile(s.configPath(name)) //nolint:gosec // G304: reading managed agent record
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading agent %s: %w", name, err)
	}
	var agent models.Agent
	if err := json.Unmarshal(data, &agent); err != nil {
		return nil, fmt.Errorf("reading agent %s: parsing JSON: %w", name, err)
	}
	return &agent, nil
}

// List returns every saved agent, sorted by name. An uninitialized
// workspace yields an empty list.
func (s *fileAgentStore) List() ([]*models.Agent, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, "agents"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing agents: %w", err)
	}

	var agents []*models.Agent
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		agent, err := s.Get(entry.Name())
		if err != nil {
			return nil, err
		}
		if agent == nil {
			// Directory without a config.json (e.g. mailbox only).
			continue
		}
		agents = append(agents, agent)
	}
	sort.Slice(agents, func(i, j int) bool {
		return agents[i].Name < agents[j].Name
	})
	return agents, nil
}

// Delete removes the agent's entire directory, including its mailbox.
// Deleting an absent agent is a no-op.
func (s *fileAgentStore) Delete(name string) error {
	if err := os.RemoveAll(s.agentDir(name)); err != nil {
		return fmt.Errorf("deleting agent %s: %w", name, err)
	}
	return nil
}
