package services

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"graphcanvas/application/ports"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/entities"
	"graphcanvas/pkg/extensions"
)

// PanelMode is the properties panel's local edit state
type PanelMode string

const (
	PanelModeView PanelMode = "view"
	PanelModeEdit PanelMode = "edit"
)

// PanelView is what the properties panel currently displays
type PanelView struct {
	NodeID   string
	Label    string
	NodeType string
	Body     string
	Mode     PanelMode
}

// PanelSync keeps the properties panel consistent with the graph. On every
// graph change it re-reads the selected node: still present means the panel
// refreshes in place, deleted means selection is already gone and the panel
// closes. Edit mode is transient and resets whenever the displayed node id
// changes.
type PanelSync struct {
	graph     *aggregates.Graph
	renderers map[string]ports.DetailRenderer
	hooks     *extensions.HookManager
	logger    *zap.Logger

	view *PanelView
}

// NewPanelSync creates the sync service and subscribes it to graph changes
func NewPanelSync(
	graph *aggregates.Graph,
	renderers map[string]ports.DetailRenderer,
	hooks *extensions.HookManager,
	logger *zap.Logger,
) *PanelSync {
	if renderers == nil {
		renderers = make(map[string]ports.DetailRenderer)
	}
	s := &PanelSync{
		graph:     graph,
		renderers: renderers,
		hooks:     hooks,
		logger:    logger,
	}
	graph.OnChange(s.Sync)
	return s
}

// RegisterRenderer installs a detail renderer for one node type
func (s *PanelSync) RegisterRenderer(nodeType string, renderer ports.DetailRenderer) {
	s.renderers[nodeType] = renderer
}

// View returns the current panel contents, nil when the panel is closed
func (s *PanelSync) View() *PanelView {
	return s.view
}

// IsOpen reports whether the panel is showing a node
func (s *PanelSync) IsOpen() bool {
	return s.view != nil
}

// BeginEdit switches the panel into edit mode and asks the host for the edit
// form. It fails silently when the panel is closed.
func (s *PanelSync) BeginEdit() {
	if s.view == nil {
		return
	}
	s.view.Mode = PanelModeEdit
	s.hooks.Notify(extensions.HookNodeEditRequested, extensions.NodeHookData{
		NodeID:   s.view.NodeID,
		Label:    s.view.Label,
		NodeType: s.view.NodeType,
	})
}

// EndEdit returns the panel to view mode
func (s *PanelSync) EndEdit() {
	if s.view == nil {
		return
	}
	s.view.Mode = PanelModeView
}

// Sync reconciles the panel with the graph's current selection. Runs after
// every graph mutation.
func (s *PanelSync) Sync() {
	node, selected := s.graph.SelectedNode()
	if !selected {
		if s.view != nil {
			s.view = nil
			s.hooks.Notify(extensions.HookPanelClosed, nil)
		}
		return
	}

	// Edit mode survives refreshes of the same node but never a change of
	// identity
	mode := PanelModeView
	if s.view != nil && s.view.NodeID == node.ID().String() {
		mode = s.view.Mode
	}

	previousID := ""
	if s.view != nil {
		previousID = s.view.NodeID
	}

	s.view = &PanelView{
		NodeID:   node.ID().String(),
		Label:    node.Label(),
		NodeType: node.Type(),
		Body:     s.renderBody(node),
		Mode:     mode,
	}

	if previousID != node.ID().String() {
		s.hooks.Notify(extensions.HookSelectionChanged, extensions.NodeHookData{
			NodeID:   node.ID().String(),
			Label:    node.Label(),
			NodeType: node.Type(),
		})
	}
	s.hooks.Notify(extensions.HookPanelRefreshed, *s.view)
}

// renderBody renders the panel body through the host's renderer for the
// node's type, falling back to a plain property listing
func (s *PanelSync) renderBody(node *entities.Node) string {
	if renderer, ok := s.renderers[node.Type()]; ok {
		body, err := renderer.Render(node)
		if err == nil {
			return body
		}
		s.logger.Warn("detail renderer failed",
			zap.String("node_type", node.Type()),
			zap.Error(err))
	}
	return defaultDetailBody(node)
}

// defaultDetailBody is the "no form available" fallback: the node's
// properties listed in stable key order
func defaultDetailBody(node *entities.Node) string {
	props := node.Properties().ToMap()
	if len(props) == 0 {
		return "no details available"
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, props[k])
	}
	return strings.TrimRight(b.String(), "\n")
}
