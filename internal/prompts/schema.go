// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dacolabs/crashpipe/internal/translate"
)

var (
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7fdbca"))
	nullStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
)

// RenderSchema renders a typed schema tree for terminal display.
func RenderSchema(root *translate.Node) string {
	var sb strings.Builder
	sb.WriteString(kindStyle.Render("struct"))
	sb.WriteString("\n")
	renderChildren(&sb, root.Children, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, children []translate.Node, prefix string) {
	for i := range children {
		child := &children[i]
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}

		nullable := ""
		if child.Nullable {
			nullable = nullStyle.Render(" (nullable)")
		}

		fmt.Fprintf(sb, "%s%s%s: %s%s\n",
			prefix,
			connector,
			nameStyle.Render(child.Name),
			kindStyle.Render(child.Kind.String()),
			nullable,
		)
		renderChildren(sb, child.Children, childPrefix)
	}
}
