// Package processor inspects page content without translating it.
package processor

import "github.com/apiglot/apiglot"

// Inspector is an alias to the main package interface.
type Inspector = apiglot.Inspector

// TextNode is an alias to the main package type.
type TextNode = apiglot.TextNode

// DefaultIgnoredTags are elements whose text is never sent for translation.
var DefaultIgnoredTags = []string{"script", "style", "code", "pre", "textarea", "noscript"}
