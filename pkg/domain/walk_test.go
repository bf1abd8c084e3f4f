package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDoc() Document {
	return Document{
		Paragraph{Children: []Node{Text{Text: "intro"}}},
		Heading{Level: 1, Children: []Node{Text{Text: "Main "}, Text{Text: "title", Marks: Marks(MarkBold)}}},
		Heading{Level: 2, Children: []Node{Text{Text: "Second"}}},
		List{Children: []Node{Unknown{Type: KindListItem, Children: []Node{Text{Text: "a"}}}}},
	}
}

func TestWalk_Depth(t *testing.T) {
	var depths []int
	Walk(sampleDoc(), func(n Node, depth int) bool {
		if _, ok := n.(Text); ok {
			depths = append(depths, depth)
		}
		return true
	})

	assert.Equal(t, []int{1, 1, 1, 1, 2}, depths)
}

func TestWalk_SkipChildren(t *testing.T) {
	visited := 0
	Walk(sampleDoc(), func(Node, int) bool {
		visited++
		return false
	})

	assert.Equal(t, 4, visited)
}

func TestTitleOf(t *testing.T) {
	assert.Equal(t, "Main title", TitleOf(sampleDoc()))
	assert.Equal(t, "", TitleOf(Document{Paragraph{}}))
}

func TestCount(t *testing.T) {
	s := Count(sampleDoc())

	assert.Equal(t, 10, s.Nodes)
	assert.Equal(t, 5, s.Text)
	assert.Equal(t, 2, s.MaxDepth)
	assert.Equal(t, 2, s.Kinds[KindHeading])
	assert.Equal(t, 1, s.Kinds[KindUnorderedList])
}
