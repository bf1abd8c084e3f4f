/*
Package domain contains the document model rendered by docrender.

It defines the nodes of a rich-text document as produced by a structured content
editor: Text leaves carrying inline marks, and Element nodes carrying a kind, an
ordered list of children and the attributes that kind uses. This package is kept
pure and free of external dependencies like I/O, decoding or presentation.

# Key Entities

  - Node: sealed union of Text and the Element variants.
  - Element: a node with a kind discriminator and children (Paragraph, Heading, Code,
    Link, ComponentBlock, ...), plus Unknown for kinds the renderer does not know.
  - Mark / MarkSet: the eight inline formatting flags of a Text node.
  - PropPath: the location inside a component block's props where a rendered child
    is spliced in.
*/
package domain
