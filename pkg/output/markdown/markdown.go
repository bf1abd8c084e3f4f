// Package markdown serializes tree output into CommonMark.
//
// Documents are rendered with the tree Factory first; Render then maps the tags of
// the default renderers to Markdown syntax. Tags without a Markdown form (kbd, sub,
// sup, u) are kept as inline HTML, which CommonMark allows.
package markdown

import (
	"strconv"
	"strings"

	"github.com/aretw0/docrender/pkg/output/tree"
)

// Render serializes the top-level nodes as Markdown blocks separated by blank lines.
func Render(nodes []*tree.Node) string {
	blocks := blocksOf(nodes)
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// renderBlocks flattens fragments and wrapper divs into a list of blocks.
func renderBlocks(n *tree.Node) []string {
	if n == nil || n.IsEmpty() {
		return nil
	}
	switch n.Type {
	case tree.TypeText:
		return []string{escape(n.Text)}
	case tree.TypeFragment:
		return childBlocks(n)
	}
	if isInline(n) {
		return []string{inline([]*tree.Node{n})}
	}

	switch n.Tag {
	case "p", "span":
		return []string{inline(n.Children)}
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Tag[1] - '0')
		return []string{strings.Repeat("#", level) + " " + inline(n.Children)}
	case "blockquote":
		body := strings.Join(childBlocks(n), "\n\n")
		return []string{prefixLines(body, "> ", ">")}
	case "pre":
		fence := "```"
		for strings.Contains(n.PlainText(), fence) {
			fence += "`"
		}
		return []string{fence + "\n" + n.PlainText() + "\n" + fence}
	case "hr":
		return []string{"---"}
	case "ul", "ol":
		return []string{list(n)}
	}
	return childBlocks(n)
}

func childBlocks(n *tree.Node) []string {
	return blocksOf(n.Children)
}

// blocksOf renders nodes as blocks. Consecutive inline nodes share one block.
func blocksOf(nodes []*tree.Node) []string {
	var out []string
	var run []*tree.Node
	flush := func() {
		if s := inline(run); s != "" {
			out = append(out, s)
		}
		run = nil
	}
	for _, n := range nodes {
		if n == nil || n.IsEmpty() {
			continue
		}
		if isInline(n) {
			run = append(run, n)
			continue
		}
		flush()
		out = append(out, renderBlocks(n)...)
	}
	flush()
	return out
}

var blockTags = map[string]bool{
	"p": true, "span": true, "div": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "hr": true, "ul": true, "ol": true,
}

func isInline(n *tree.Node) bool {
	switch n.Type {
	case tree.TypeText:
		return true
	case tree.TypeFragment:
		for _, c := range n.Children {
			if c != nil && !isInline(c) {
				return false
			}
		}
		return true
	}
	return !blockTags[n.Tag]
}

func list(n *tree.Node) string {
	var items []string
	num := 1
	for _, item := range n.Children {
		if item.IsEmpty() {
			continue
		}
		marker := "- "
		if n.Tag == "ol" {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		body := strings.Join(renderBlocks(item), "\n")
		indent := strings.Repeat(" ", len(marker))
		items = append(items, marker+prefixRest(body, indent))
	}
	return strings.Join(items, "\n")
}

// inline renders phrasing content on a single line.
func inline(nodes []*tree.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writeInline(&sb, n)
	}
	return sb.String()
}

func writeInline(sb *strings.Builder, n *tree.Node) {
	if n == nil {
		return
	}
	switch n.Type {
	case tree.TypeText:
		sb.WriteString(escape(n.Text))
		return
	case tree.TypeFragment:
		for _, c := range n.Children {
			writeInline(sb, c)
		}
		return
	}

	content := inline(n.Children)
	switch n.Tag {
	case "strong":
		sb.WriteString("**" + content + "**")
	case "em":
		sb.WriteString("_" + content + "_")
	case "s":
		sb.WriteString("~~" + content + "~~")
	case "code":
		sb.WriteString(codeSpan(n.PlainText()))
	case "a":
		sb.WriteString("[" + content + "](" + n.Attr("href") + ")")
	case "kbd", "sub", "sup", "u":
		sb.WriteString("<" + n.Tag + ">" + content + "</" + n.Tag + ">")
	default:
		sb.WriteString(content)
	}
}

func codeSpan(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

func escape(s string) string {
	return escaper.Replace(s)
}

func prefixLines(s, prefix, blank string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = blank
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func prefixRest(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
