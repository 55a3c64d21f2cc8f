package domain

import "strings"

// ComponentType identifies a node of the insight content tree.
type ComponentType string

// Component types understood by the renderers.
const (
	ComponentPanel    ComponentType = "panel"
	ComponentHeading  ComponentType = "heading"
	ComponentText     ComponentType = "text"
	ComponentDivider  ComponentType = "divider"
	ComponentCopyable ComponentType = "copyable"
)

// Component is a node of the content tree shown next to a pending transaction.
// Text values may contain the markdown subset **bold** and _italic_.
type Component struct {
	Type     ComponentType `json:"type"`
	Value    string        `json:"value,omitempty"`
	Children []Component   `json:"children,omitempty"`
}

// Panel groups child components.
func Panel(children ...Component) Component {
	return Component{Type: ComponentPanel, Children: children}
}

// Heading is a title line.
func Heading(value string) Component {
	return Component{Type: ComponentHeading, Value: value}
}

// Text is a block of markdown text.
func Text(value string) Component {
	return Component{Type: ComponentText, Value: value}
}

// Divider separates sections.
func Divider() Component {
	return Component{Type: ComponentDivider}
}

// Copyable is a value the user can copy.
func Copyable(value string) Component {
	return Component{Type: ComponentCopyable, Value: value}
}

// PlainText flattens the tree into its text values, one node per line.
func (c Component) PlainText() string {
	var b strings.Builder
	c.writePlain(&b)
	return strings.TrimRight(b.String(), "\n")
}

func (c Component) writePlain(b *strings.Builder) {
	switch c.Type {
	case ComponentPanel:
		for _, child := range c.Children {
			child.writePlain(b)
		}
	case ComponentDivider:
		b.WriteString("---\n")
	default:
		b.WriteString(c.Value)
		b.WriteString("\n")
	}
}
