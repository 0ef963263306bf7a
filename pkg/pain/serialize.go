package pain

import (
	"fmt"

	"github.com/beevik/etree"
)

// Serialize renders a document tree as indented UTF-8 XML text with a
// declaration. The namespace is declared once on the root element and
// inherited by every child.
func Serialize(doc *etree.Document) (string, error) {
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	return out, nil
}
