package extensions

import (
	"context"
	"fmt"
	"sync"
)

// HookPoint represents a point in the editor where hooks can be registered
type HookPoint string

const (
	// Command hooks
	HookBeforeCommandExecute HookPoint = "before_command_execute"
	HookAfterCommandExecute  HookPoint = "after_command_execute"
	HookCommandFailed        HookPoint = "command_failed"

	// Query hooks
	HookBeforeQueryExecute HookPoint = "before_query_execute"
	HookAfterQueryExecute  HookPoint = "after_query_execute"
	HookQueryFailed        HookPoint = "query_failed"

	// Pointer interaction callbacks surfaced to the host
	HookNodeClicked       HookPoint = "node_clicked"
	HookNodeDoubleClicked HookPoint = "node_double_clicked"
	HookEdgeClicked       HookPoint = "edge_clicked"
	HookBackgroundClicked HookPoint = "background_clicked"

	// Host-authorized mutation requests. The host owns element creation and
	// deletion; the editor only asks.
	HookEdgeCreateRequested HookPoint = "edge_create_requested"
	HookNodeEditRequested   HookPoint = "node_edit_requested"
	HookNodeDeleteRequested HookPoint = "node_delete_requested"
	HookNodeAddRequested    HookPoint = "node_add_requested"

	// Edge-creation flow
	HookEdgeTypePromptOpened HookPoint = "edge_type_prompt_opened"

	// Non-fatal conditions surfaced to the host (no legal edge type, etc.)
	HookWarning HookPoint = "warning"

	// Selection and panel sync
	HookSelectionChanged HookPoint = "selection_changed"
	HookPanelRefreshed   HookPoint = "panel_refreshed"
	HookPanelClosed      HookPoint = "panel_closed"

	// Every drained domain event passes through here
	HookDomainEvent HookPoint = "domain_event"
)

// NodeHookData is the payload for node-targeted interaction hooks
type NodeHookData struct {
	NodeID   string
	Label    string
	NodeType string
}

// EdgeHookData is the payload for edge-targeted interaction hooks
type EdgeHookData struct {
	EdgeID   string
	SourceID string
	TargetID string
	EdgeType string
}

// PointHookData is the payload for background interactions, in model space
type PointHookData struct {
	X float64
	Y float64
}

// EdgeCreateRequestData asks the host to authorize an edge creation
type EdgeCreateRequestData struct {
	SourceID string
	TargetID string
	EdgeType string
}

// EdgeTypePromptData lists the legal choices for an ambiguous edge creation,
// in catalog order
type EdgeTypePromptData struct {
	SourceID string
	TargetID string
	Options  []string
	Labels   []string
}

// WarningData is a non-fatal condition the host may surface to the user
type WarningData struct {
	Code    string
	Message string
}

// Hook represents a function that can be executed at a hook point
type Hook func(ctx context.Context, data interface{}) error

// HookManager manages hooks for extension points
type HookManager struct {
	hooks map[HookPoint][]Hook
	mu    sync.RWMutex
}

// NewHookManager creates a new hook manager
func NewHookManager() *HookManager {
	return &HookManager{
		hooks: make(map[HookPoint][]Hook),
	}
}

// Register registers a hook for a specific hook point
func (m *HookManager) Register(point HookPoint, hook Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks[point] = append(m.hooks[point], hook)
}

// Execute executes all hooks for a specific hook point
func (m *HookManager) Execute(ctx context.Context, point HookPoint, data interface{}) error {
	m.mu.RLock()
	hooks := m.hooks[point]
	m.mu.RUnlock()

	for i, hook := range hooks {
		if err := hook(ctx, data); err != nil {
			return fmt.Errorf("hook %d at %s failed: %w", i, point, err)
		}
	}

	return nil
}

// Notify executes hooks for an informational callback, discarding errors.
// Interaction callbacks are notifications, not veto points.
func (m *HookManager) Notify(point HookPoint, data interface{}) {
	_ = m.Execute(context.Background(), point, data)
}

// ExecuteAsync executes hooks asynchronously
func (m *HookManager) ExecuteAsync(ctx context.Context, point HookPoint, data interface{}) {
	m.mu.RLock()
	hooks := m.hooks[point]
	m.mu.RUnlock()

	for _, hook := range hooks {
		go func(h Hook) {
			_ = h(ctx, data) // Ignore errors in async execution
		}(hook)
	}
}

// Clear removes all hooks for a specific hook point
func (m *HookManager) Clear(point HookPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.hooks, point)
}

// ClearAll removes all registered hooks
func (m *HookManager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks = make(map[HookPoint][]Hook)
}
